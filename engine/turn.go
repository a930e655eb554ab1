package engine

import "fmt"

// draw moves up to n cards from the end of the deck into p's hand.
// An exhausted deck is not an error; fewer cards are drawn.
func (g *GameState) draw(p *Player, n int) int {
	drawn := 0
	for ; drawn < n && len(g.Deck) > 0; drawn++ {
		last := len(g.Deck) - 1
		p.Hand = append(p.Hand, g.Deck[last])
		g.Deck = g.Deck[:last]
	}
	return drawn
}

// StartTurn draws for the current player and resets the per-turn counters.
func (g *GameState) StartTurn() {
	p := g.CurrentPlayer()
	n := g.Rules.DrawPerTurn
	if len(p.Hand) == 0 {
		n = g.Rules.EmptyHandDraw
	}
	g.draw(p, n)
	g.CardsPlayedThisTurn = 0
	g.WildCardReassignedThisTurn = false
}

// EndTurn ends the current player's turn on their request.
func (g *GameState) EndTurn(playerID PlayerID) error {
	if err := g.requireTurn(playerID); err != nil {
		return err
	}
	if g.Pending != nil {
		return fmt.Errorf("end turn: %w (%s)", ErrPendingAction, g.Pending.Kind())
	}
	g.record("", playerID, "", 0)
	g.endTurn()
	return nil
}

// endTurn checks for a win, then the hand limit, then passes the turn.
func (g *GameState) endTurn() {
	p := g.CurrentPlayer()
	if p.CompleteSets() >= g.Rules.SetsToWin {
		g.WinnerID = p.ID
		g.Pending = nil
		return
	}
	if len(p.Hand) > g.Rules.HandLimit {
		g.Pending = &DiscardPending{PlayerID: p.ID}
		return
	}
	g.advanceTurn()
}

func (g *GameState) advanceTurn() {
	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)
	g.StartTurn()
}

// finishAction runs after every successful play or resolution. Once the turn
// budget is spent and nothing is pending, the turn ends.
func (g *GameState) finishAction() {
	if g.Pending != nil || g.IsGameOver() {
		return
	}
	if g.CardsPlayedThisTurn >= g.Rules.MaxCardsPerTurn {
		g.endTurn()
	}
}

// DiscardCards resolves DISCARD_NEEDED: exactly len(hand)-HandLimit distinct
// cards from the player's hand go to the discard pile, then the turn passes.
func (g *GameState) DiscardCards(playerID PlayerID, cardIDs []CardID) error {
	if err := g.requireLive(); err != nil {
		return err
	}
	pending, ok := g.Pending.(*DiscardPending)
	if !ok {
		return fmt.Errorf("discard: %w", ErrWrongPending)
	}
	if pending.PlayerID != playerID {
		return fmt.Errorf("discard: %w", ErrNotResponder)
	}
	p := g.Player(playerID)
	want := len(p.Hand) - g.Rules.HandLimit
	if len(cardIDs) != want {
		return fmt.Errorf("%w: want %d, got %d", ErrDiscardCount, want, len(cardIDs))
	}
	selected := make(map[CardID]bool, len(cardIDs))
	for _, id := range cardIDs {
		if selected[id] {
			return fmt.Errorf("%w: card %d listed twice", ErrDiscardCount, id)
		}
		if p.handIndex(id) < 0 {
			return fmt.Errorf("discard: %w: %d", ErrCardNotFound, id)
		}
		selected[id] = true
	}

	kept := p.Hand[:0:0]
	for _, c := range p.Hand {
		if selected[c.ID] {
			g.DiscardPile = append(g.DiscardPile, c)
		} else {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
	g.Pending = nil
	g.record("Discard", playerID, "", 0)
	g.advanceTurn()
	return nil
}
