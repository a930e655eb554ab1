package engine

import (
	"fmt"
	"testing"
)

// deckTotal is the value of every card NewDeck builds.
var deckTotal = TotalValue(NewDeck())

// newTestGame deals an n-player game and then returns every hand to the deck,
// leaving player p1 on turn with an empty hand and a fresh budget.
func newTestGame(t *testing.T, n int) *GameState {
	t.Helper()
	seats := make([]Seat, n)
	for i := range seats {
		seats[i] = Seat{ID: PlayerID(fmt.Sprintf("p%d", i+1)), Name: fmt.Sprintf("Player %d", i+1)}
	}
	g, err := NewGame("room", seats, 42, DefaultHouseRules())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.Deal(); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	for i := range g.Players {
		g.Deck = append(g.Deck, g.Players[i].Hand...)
		g.Players[i].Hand = nil
	}
	return g
}

// pull removes the first deck card matching pred.
func pull(t *testing.T, g *GameState, pred func(Card) bool) Card {
	t.Helper()
	for i, c := range g.Deck {
		if pred(c) {
			g.Deck = append(g.Deck[:i:i], g.Deck[i+1:]...)
			return c
		}
	}
	t.Fatal("no matching card left in deck")
	return Card{}
}

func isAction(a ActionType) func(Card) bool {
	return func(c Card) bool { return c.Kind == KindAction && c.Action == a }
}

func isProperty(color Color) func(Card) bool {
	return func(c Card) bool { return c.Kind == KindProperty && !c.IsWildcard && c.Color == color }
}

func isMoney(value int) func(Card) bool {
	return func(c Card) bool { return c.Kind == KindMoney && c.Value == value }
}

func isRent(color Color) func(Card) bool {
	return func(c Card) bool { return c.Kind == KindRent && c.ChargesRentOn(color) }
}

func isWild(colors ...Color) func(Card) bool {
	return func(c Card) bool {
		if !c.IsWildcard || len(c.WildColors) != len(colors) {
			return false
		}
		for i := range colors {
			if c.WildColors[i] != colors[i] {
				return false
			}
		}
		return true
	}
}

// give moves a matching deck card into id's hand.
func give(t *testing.T, g *GameState, id PlayerID, pred func(Card) bool) Card {
	t.Helper()
	c := pull(t, g, pred)
	p := g.Player(id)
	p.Hand = append(p.Hand, c)
	return c
}

// own files n matching deck cards as id's properties.
func own(t *testing.T, g *GameState, id PlayerID, n int, pred func(Card) bool) []Card {
	t.Helper()
	out := make([]Card, n)
	for i := range out {
		out[i] = pull(t, g, pred)
		g.Player(id).addProperty(out[i])
	}
	return out
}

// bank moves a matching deck card into id's money pile.
func bank(t *testing.T, g *GameState, id PlayerID, pred func(Card) bool) Card {
	t.Helper()
	c := pull(t, g, pred)
	p := g.Player(id)
	p.MoneyPile = append(p.MoneyPile, c)
	return c
}

func ids(cards ...Card) []CardID {
	out := make([]CardID, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkConservation(t *testing.T, g *GameState) {
	t.Helper()
	if got := g.TotalCardValue(); got != deckTotal {
		t.Fatalf("TotalCardValue = %d, want %d", got, deckTotal)
	}
}
