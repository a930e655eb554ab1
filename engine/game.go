// Package engine implements the rules of the property-trading card game.
//
// A GameState is the single source of truth for one room. Every operation
// validates fully before mutating, so a returned error always means the state
// is unchanged. GameState is not safe for concurrent use; callers serialize
// access per room.
package engine

import (
	"encoding/json"
	"fmt"
)

// Player is one seat at the table. Hand is private; everything else is public.
type Player struct {
	ID         PlayerID    `json:"id"`
	Name       string      `json:"name"`
	Hand       []Card      `json:"hand"`
	Properties []ColorSets `json:"properties"`
	MoneyPile  []Card      `json:"moneyPile"`
	IsReady    bool        `json:"isReady"`
}

// Seat describes a player joining a new game.
type Seat struct {
	ID   PlayerID
	Name string
}

// LastAction summarizes the most recent successful operation for notifications.
// Notice is empty for plays that need no announcement.
type LastAction struct {
	Notice         string   `json:"notice,omitempty"`
	PlayerID       PlayerID `json:"playerId,omitempty"`
	TargetPlayerID PlayerID `json:"targetPlayerId,omitempty"`
	CardID         CardID   `json:"cardId,omitempty"`
}

// GameState holds the complete state of one game.
type GameState struct {
	RoomID                     string        `json:"roomId"`
	Players                    []Player      `json:"players"`
	Deck                       []Card        `json:"deck"` // drawn from the end
	DiscardPile                []Card        `json:"discardPile"`
	CurrentPlayerIndex         int           `json:"currentPlayerIndex"`
	IsStarted                  bool          `json:"isStarted"`
	WinnerID                   PlayerID      `json:"winnerId,omitempty"`
	CardsPlayedThisTurn        int           `json:"cardsPlayedThisTurn"`
	WildCardReassignedThisTurn bool          `json:"wildCardReassignedThisTurn"`
	Pending                    PendingAction `json:"-"`
	Rules                      HouseRules    `json:"-"`
	RNG                        uint64        `json:"-"`
	LastAction                 LastAction    `json:"lastAction"`
}

// NewGame seats players and builds an unshuffled deck. Call Deal to start play.
func NewGame(roomID string, seats []Seat, seed uint64, rules HouseRules) (*GameState, error) {
	if len(seats) < rules.MinPlayers {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughPlayers, rules.MinPlayers, len(seats))
	}
	if rules.MaxPlayers > 0 && len(seats) > rules.MaxPlayers {
		return nil, fmt.Errorf("%w: at most %d", ErrTooManyPlayers, rules.MaxPlayers)
	}
	g := &GameState{
		RoomID: roomID,
		Rules:  rules,
		RNG:    seed,
		Deck:   NewDeck(),
	}
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	seen := make(map[PlayerID]bool, len(seats))
	for _, s := range seats {
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, s.ID)
		}
		seen[s.ID] = true
		g.Players = append(g.Players, Player{ID: s.ID, Name: s.Name, IsReady: true})
	}
	return g, nil
}

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

func (g *GameState) randN(n uint64) uint64 { return g.nextRand() % n }

// Deal shuffles the deck, deals the opening hands and starts the first turn.
func (g *GameState) Deal() error {
	if g.IsStarted {
		return fmt.Errorf("deal: game already started")
	}
	for i := len(g.Deck) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i]
	}
	for i := range g.Players {
		g.draw(&g.Players[i], g.Rules.InitialHandSize)
	}
	g.IsStarted = true
	g.CurrentPlayerIndex = 0
	g.StartTurn()
	return nil
}

// IsGameOver reports whether a winner has been declared.
func (g *GameState) IsGameOver() bool { return g.WinnerID != "" }

// CurrentPlayer returns the player whose turn it is.
func (g *GameState) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// Player returns the player with id, or nil.
func (g *GameState) Player(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// othersOf lists every player except id, in seat order starting after id.
func (g *GameState) othersOf(id PlayerID) []PlayerID {
	n := len(g.Players)
	start := 0
	for i := range g.Players {
		if g.Players[i].ID == id {
			start = i
			break
		}
	}
	out := make([]PlayerID, 0, n-1)
	for k := 1; k < n; k++ {
		out = append(out, g.Players[(start+k)%n].ID)
	}
	return out
}

// requireTurn checks that the game is live and playerID holds the turn.
func (g *GameState) requireTurn(playerID PlayerID) error {
	if err := g.requireLive(); err != nil {
		return err
	}
	if g.CurrentPlayer().ID != playerID {
		return ErrNotYourTurn
	}
	return nil
}

func (g *GameState) requireLive() error {
	if !g.IsStarted {
		return ErrGameNotStarted
	}
	if g.IsGameOver() {
		return ErrGameOver
	}
	return nil
}

// record stores the notification for the operation that just succeeded.
func (g *GameState) record(notice string, actor, target PlayerID, card CardID) {
	g.LastAction = LastAction{Notice: notice, PlayerID: actor, TargetPlayerID: target, CardID: card}
}

// TotalCardValue sums the value of every card in the game wherever it lies.
func (g *GameState) TotalCardValue() int {
	total := TotalValue(g.Deck) + TotalValue(g.DiscardPile)
	for i := range g.Players {
		p := &g.Players[i]
		total += TotalValue(p.Hand) + TotalValue(p.MoneyPile) + TotalValue(p.propertyCards())
	}
	return total
}

// Clone returns a deep copy sharing no memory with g.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Deck = cloneCards(g.Deck)
	c.DiscardPile = cloneCards(g.DiscardPile)
	c.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		c.Players[i] = Player{
			ID:         p.ID,
			Name:       p.Name,
			Hand:       cloneCards(p.Hand),
			Properties: cloneHoldings(p.Properties),
			MoneyPile:  cloneCards(p.MoneyPile),
			IsReady:    p.IsReady,
		}
	}
	if g.Pending != nil {
		c.Pending = g.Pending.clonePending()
	}
	return &c
}

// Snapshot is a saved copy of a GameState for undo support.
type Snapshot struct{ state *GameState }

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot{state: g.Clone()} }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = *s.state.Clone() }

type gameStateJSON GameState

// MarshalJSON encodes the full broadcast snapshot, hands included.
func (g *GameState) MarshalJSON() ([]byte, error) {
	pending, err := MarshalPending(g.Pending)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		*gameStateJSON
		PendingAction json.RawMessage `json:"pendingAction"`
	}{(*gameStateJSON)(g), pending})
}

// UnmarshalJSON decodes a snapshot produced by MarshalJSON. Rules and RNG are not
// part of the snapshot and keep their current values.
func (g *GameState) UnmarshalJSON(data []byte) error {
	aux := struct {
		*gameStateJSON
		PendingAction json.RawMessage `json:"pendingAction"`
	}{gameStateJSON: (*gameStateJSON)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.Pending = nil
	if len(aux.PendingAction) > 0 {
		p, err := UnmarshalPending(aux.PendingAction)
		if err != nil {
			return err
		}
		g.Pending = p
	}
	return nil
}
