// internal/game/sync_state.go
package game

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monodeal/engine"
)

// ObfPlayerState is one seat as seen by a particular observer. Only the
// observer's own hand is revealed; everything on the table is public.
type ObfPlayerState struct {
	PlayerID      uuid.UUID          `json:"playerId"`
	Username      string             `json:"username"`
	Connected     bool               `json:"connected"`
	IsCurrentTurn bool               `json:"isCurrentTurn"`
	HandSize      int                `json:"handSize"`
	Hand          []engine.Card      `json:"hand,omitempty"` // self only
	Properties    []engine.ColorSets `json:"properties"`
	MoneyPile     []engine.Card      `json:"moneyPile"`
	BankValue     int                `json:"bankValue"`
	CompleteSets  int                `json:"completeSets"`
}

// ObfGameState is the whole table as seen by one observer.
type ObfGameState struct {
	GameID                     uuid.UUID         `json:"gameId"`
	RoomID                     uuid.UUID         `json:"roomId"`
	Started                    bool              `json:"started"`
	GameOver                   bool              `json:"gameOver"`
	CurrentPlayerID            uuid.UUID         `json:"currentPlayerId"`
	WinnerID                   uuid.UUID         `json:"winnerId"`
	DeckSize                   int               `json:"deckSize"`
	DiscardSize                int               `json:"discardSize"`
	DiscardTop                 *engine.Card      `json:"discardTop,omitempty"`
	CardsPlayedThisTurn        int               `json:"cardsPlayedThisTurn"`
	MaxCardsPerTurn            int               `json:"maxCardsPerTurn"`
	WildCardReassignedThisTurn bool              `json:"wildCardReassignedThisTurn"`
	PendingAction              json.RawMessage   `json:"pendingAction"`
	AwaitingPlayers            []uuid.UUID       `json:"awaitingPlayers"`
	LastAction                 engine.LastAction `json:"lastAction"`
	Players                    []ObfPlayerState  `json:"players"`
}

// GetCurrentObfuscatedGameState builds the table as seen by forUser. Passing
// uuid.Nil yields the spectator view with every hand hidden.
// This function assumes the game lock is HELD by the caller.
func (g *DealGame) GetCurrentObfuscatedGameState(forUser uuid.UUID) ObfGameState {
	obf := ObfGameState{
		GameID:          g.ID,
		RoomID:          g.RoomID,
		Started:         g.Started,
		GameOver:        g.GameOver,
		MaxCardsPerTurn: g.Rules.MaxCardsPerTurn,
		PendingAction:   json.RawMessage("null"),
	}
	if g.Engine == nil {
		for _, p := range g.Players {
			obf.Players = append(obf.Players, ObfPlayerState{
				PlayerID:  p.ID,
				Username:  p.Name(),
				Connected: p.Connected,
			})
		}
		return obf
	}

	st := g.Engine.Clone() // events outlive the lock
	obf.CurrentPlayerID = g.currentPlayerID()
	obf.WinnerID = playerUUID(st.WinnerID)
	obf.DeckSize = len(st.Deck)
	obf.DiscardSize = len(st.DiscardPile)
	if n := len(st.DiscardPile); n > 0 {
		top := st.DiscardPile[n-1]
		obf.DiscardTop = &top
	}
	obf.CardsPlayedThisTurn = st.CardsPlayedThisTurn
	obf.WildCardReassignedThisTurn = st.WildCardReassignedThisTurn
	obf.LastAction = st.LastAction
	if raw, err := engine.MarshalPending(st.Pending); err == nil {
		obf.PendingAction = raw
	}
	for _, id := range st.AwaitingPlayers() {
		obf.AwaitingPlayers = append(obf.AwaitingPlayers, playerUUID(id))
	}

	obf.Players = make([]ObfPlayerState, len(st.Players))
	for i := range st.Players {
		ep := &st.Players[i]
		id := playerUUID(ep.ID)
		ps := ObfPlayerState{
			PlayerID:      id,
			Username:      ep.Name,
			IsCurrentTurn: i == st.CurrentPlayerIndex && !g.GameOver,
			HandSize:      len(ep.Hand),
			Properties:    ep.Properties,
			MoneyPile:     ep.MoneyPile,
			BankValue:     engine.TotalValue(ep.MoneyPile),
			CompleteSets:  ep.CompleteSets(),
		}
		if p := g.getPlayerByID(id); p != nil {
			ps.Connected = p.Connected
		}
		if forUser != uuid.Nil && id == forUser {
			ps.Hand = ep.Hand
		}
		obf.Players[i] = ps
	}
	return obf
}

// sendSyncState sends the current state to a single player.
// Assumes lock is held by caller.
func (g *DealGame) sendSyncState(playerID uuid.UUID) {
	state := g.GetCurrentObfuscatedGameState(playerID)
	g.fireEventToPlayer(playerID, GameEvent{Type: EventPrivateSyncState, State: &state})
}

// broadcastSyncStateToAll sends each connected player their own view.
// Assumes lock is held by caller.
func (g *DealGame) broadcastSyncStateToAll() {
	for _, p := range g.Players {
		if p.Connected {
			g.sendSyncState(p.ID)
		}
	}
}
