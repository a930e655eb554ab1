// internal/game/game.go
package game

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/jason-s-yu/monodeal/engine"
	"github.com/jason-s-yu/monodeal/service/internal/cache"
	"github.com/jason-s-yu/monodeal/service/internal/database"
	"github.com/jason-s-yu/monodeal/service/internal/models"
	log "github.com/sirupsen/logrus"
)

// OnGameEndFunc is called once when a game finishes. winner is Nil if the game
// ended without one.
type OnGameEndFunc func(roomID uuid.UUID, winner uuid.UUID)

// GameEventType represents the type of a game-related event broadcast via WebSockets.
type GameEventType string

const (
	EventLobbyUpdate      GameEventType = "lobby_update"       // Public: roster or ready flags changed.
	EventGameStart        GameEventType = "game_start"         // Public: cards were dealt.
	EventPrivateSyncState GameEventType = "private_sync_state" // Private: state as seen by one player.
	EventNotification     GameEventType = "notification"       // Public: a named action was played or resolved.
	EventGamePlayerTurn   GameEventType = "game_player_turn"   // Public: the turn passed to another player.
	EventPrivateError     GameEventType = "private_error"      // Private: the player's last action was rejected.
	EventGameEnd          GameEventType = "game_end"           // Public: a player completed the winning sets.
)

// EventUser identifies a user within a GameEvent payload.
type EventUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username,omitempty"`
}

// GameEvent is the envelope for everything pushed to clients.
type GameEvent struct {
	Type         GameEventType          `json:"type"`
	User         *EventUser             `json:"user,omitempty"`
	Target       *EventUser             `json:"target,omitempty"`
	Notification string                 `json:"notification,omitempty"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
	State        *ObfGameState          `json:"state,omitempty"`
}

// DealGame is one room: its roster, the authoritative engine state and the
// callbacks that carry events to connected players.
type DealGame struct {
	ID     uuid.UUID // Changes with every new deal in the room.
	RoomID uuid.UUID

	Rules       engine.HouseRules
	Seed        uint64        // Shuffle seed; zero picks one from the clock.
	SnapshotTTL time.Duration // Lifetime of the observer snapshot in Redis.

	Players []*models.Player
	Engine  *engine.GameState

	Started  bool
	GameOver bool

	actionIndex int
	Mu          sync.Mutex

	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc
}

// NewDealGame creates an empty room playing by rules.
func NewDealGame(roomID uuid.UUID, rules engine.HouseRules) *DealGame {
	return &DealGame{
		ID:          uuid.New(),
		RoomID:      roomID,
		Rules:       rules,
		SnapshotTTL: 24 * time.Hour,
	}
}

// AddPlayer seats p in the lobby, or reattaches the connection of a seated
// player. It reports whether p is now part of the room.
// Assumes lock is held by caller.
func (g *DealGame) AddPlayer(p *models.Player) bool {
	if existing := g.getPlayerByID(p.ID); existing != nil {
		g.HandleReconnect(p.ID, p.Conn)
		return true
	}
	if g.Started && !g.GameOver {
		log.Infof("Game %s: Player %s cannot join, game in progress.", g.ID, p.ID)
		if p.Conn != nil {
			p.Conn.Close(websocket.StatusPolicyViolation, "Game already in progress.")
		}
		return false
	}
	if g.Rules.MaxPlayers > 0 && len(g.Players) >= g.Rules.MaxPlayers {
		log.Infof("Game %s: Player %s cannot join, room is full.", g.ID, p.ID)
		if p.Conn != nil {
			p.Conn.Close(websocket.StatusPolicyViolation, "Room is full.")
		}
		return false
	}
	p.IsReady = false
	g.Players = append(g.Players, p)
	log.Infof("Game %s: Player %s (%s) added.", g.ID, p.ID, p.Name())
	g.logAction(p.ID, "player_add", map[string]interface{}{"username": p.Name()})
	g.broadcastLobby()
	return true
}

// RemovePlayer drops a player from the lobby. Seats are fixed once cards are dealt.
// Assumes lock is held by caller.
func (g *DealGame) RemovePlayer(playerID uuid.UUID) bool {
	if g.Started && !g.GameOver {
		return false
	}
	for i, p := range g.Players {
		if p.ID == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			log.Infof("Game %s: Player %s left the lobby.", g.ID, playerID)
			g.logAction(playerID, "player_remove", nil)
			g.broadcastLobby()
			return true
		}
	}
	return false
}

// ToggleReady flips the ready flag of a lobby player and deals once every seated
// player is ready.
// Assumes lock is held by caller.
func (g *DealGame) ToggleReady(playerID uuid.UUID) error {
	if g.Started && !g.GameOver {
		return ErrGameInProgress
	}
	p := g.getPlayerByID(playerID)
	if p == nil {
		return ErrNotSeated
	}
	p.IsReady = !p.IsReady
	g.logAction(playerID, "player_ready", map[string]interface{}{"ready": p.IsReady})
	g.broadcastLobby()

	if len(g.Players) < g.Rules.MinPlayers {
		return nil
	}
	for _, pl := range g.Players {
		if !pl.IsReady {
			return nil
		}
	}
	return g.Start()
}

// Start deals a new game to the seated players.
// Assumes lock is held by caller.
func (g *DealGame) Start() error {
	seats := make([]engine.Seat, len(g.Players))
	for i, p := range g.Players {
		seats[i] = engine.Seat{ID: enginePlayerID(p.ID), Name: p.Name()}
	}
	seed := g.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	state, err := engine.NewGame(g.RoomID.String(), seats, seed, g.Rules)
	if err != nil {
		log.Warnf("Game %s: cannot start: %v", g.ID, err)
		return err
	}
	if err := state.Deal(); err != nil {
		return err
	}
	if g.GameOver {
		g.ID = uuid.New() // rematch in the same room
	}
	g.Engine = state
	g.Started = true
	g.GameOver = false
	g.actionIndex = 0
	for _, p := range g.Players {
		p.IsReady = false
	}

	log.Infof("Game %s: Started with %d players.", g.ID, len(g.Players))
	g.logAction(uuid.Nil, string(EventGameStart), map[string]interface{}{"players": len(g.Players), "seed": seed})
	g.fireEvent(GameEvent{
		Type:    EventGameStart,
		Payload: map[string]interface{}{"gameId": g.ID.String(), "firstPlayer": g.currentPlayerID().String()},
	})
	g.broadcastSyncStateToAll()
	g.storeSnapshot()
	return nil
}

// HandleDisconnect marks a player as disconnected. The seat is kept; a pending
// action waiting on the player stays open until they return.
// Assumes lock is held by caller.
func (g *DealGame) HandleDisconnect(playerID uuid.UUID) {
	p := g.getPlayerByID(playerID)
	if p == nil {
		log.Debugf("Game %s: Disconnected player %s not found.", g.ID, playerID)
		return
	}
	if !p.Connected {
		return
	}
	p.Connected = false
	p.Conn = nil
	log.Infof("Game %s: Player %s disconnected.", g.ID, playerID)
	g.logAction(playerID, "player_disconnect", nil)

	if !g.Started || g.GameOver {
		g.RemovePlayer(playerID)
		return
	}
	g.broadcastSyncStateToAll()
}

// HandleReconnect marks a player as connected and sends them the current state.
// Assumes lock is held by caller.
func (g *DealGame) HandleReconnect(playerID uuid.UUID, conn *websocket.Conn) {
	p := g.getPlayerByID(playerID)
	if p == nil {
		log.Infof("Game %s: Reconnecting player %s not found.", g.ID, playerID)
		if conn != nil {
			conn.Close(websocket.StatusPolicyViolation, "You are not seated in this room.")
		}
		return
	}
	p.Connected = true
	p.Conn = conn
	log.Infof("Game %s: Player %s reconnected.", g.ID, playerID)
	g.logAction(playerID, "player_reconnect", nil)

	if g.Engine != nil {
		g.sendSyncState(playerID)
	} else {
		g.broadcastLobby()
	}
}

// EndGame finalizes a won game: it archives the result, announces the winner
// and notifies the room owner.
// Assumes lock is held by caller.
func (g *DealGame) EndGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true

	var winner uuid.UUID
	winnerName := ""
	if g.Engine != nil && g.Engine.WinnerID != "" {
		winner = playerUUID(g.Engine.WinnerID)
		if p := g.Engine.Player(g.Engine.WinnerID); p != nil {
			winnerName = p.Name
		}
	}
	log.Infof("Game %s: Ended. Winner: %s (%s).", g.ID, winner, winnerName)

	sets := map[string]int{}
	if g.Engine != nil {
		for _, p := range g.Engine.Players {
			sets[string(p.ID)] = p.CompleteSets()
		}
	}
	g.logAction(uuid.Nil, string(EventGameEnd), map[string]interface{}{"winner": winner, "completeSets": sets})
	g.persistFinalGameState(winner)

	g.fireEvent(GameEvent{
		Type: EventGameEnd,
		User: &EventUser{ID: winner, Username: winnerName},
		Payload: map[string]interface{}{
			"winner":       winner.String(),
			"completeSets": sets,
		},
	})
	g.broadcastSyncStateToAll()
	g.storeSnapshot()

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.RoomID, winner)
	}
}

// persistFinalGameState archives the final engine state in Postgres.
// Assumes lock is held by caller.
func (g *DealGame) persistFinalGameState(winner uuid.UUID) {
	if database.DB == nil || g.Engine == nil {
		return
	}
	data, err := json.Marshal(g.Engine)
	if err != nil {
		log.Errorf("Game %s: encoding final state: %v", g.ID, err)
		return
	}
	winnerID := ""
	if winner != uuid.Nil {
		winnerID = winner.String()
	}
	go database.StoreFinalGameStateInDB(context.Background(), g.ID, g.RoomID, winnerID, data)
}

// storeSnapshot publishes the spectator view of the room to Redis.
// Assumes lock is held by caller.
func (g *DealGame) storeSnapshot() {
	if cache.Rdb == nil || g.Engine == nil {
		return
	}
	data, err := json.Marshal(g.GetCurrentObfuscatedGameState(uuid.Nil))
	if err != nil {
		log.Errorf("Game %s: encoding snapshot: %v", g.ID, err)
		return
	}
	go func(roomID uuid.UUID, ttl time.Duration) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.StoreSnapshot(ctx, roomID, data, ttl); err != nil {
			log.Warnf("Game %s: storing snapshot: %v", g.ID, err)
		}
	}(g.RoomID, g.SnapshotTTL)
}

// logAction sends game action details to the historian queue in Redis.
// Assumes lock is held by caller.
func (g *DealGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActorUserID:   actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	if cache.Rdb == nil {
		return
	}
	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			log.Errorf("Game %s: Failed publishing action %d ('%s') to Redis: %v", g.ID, rec.ActionIndex, rec.ActionType, err)
		}
	}(record)
}

// fireEvent broadcasts an event to all connected players.
// Assumes lock is held by caller.
func (g *DealGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn == nil {
		log.Warnf("Game %s: BroadcastFn is nil, cannot broadcast event type %s.", g.ID, ev.Type)
		return
	}
	g.BroadcastFn(ev)
}

// fireEventToPlayer sends an event to one connected player.
// Assumes lock is held by caller.
func (g *DealGame) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn == nil {
		log.Warnf("Game %s: BroadcastToPlayerFn is nil, cannot send event type %s to player %s.", g.ID, ev.Type, playerID)
		return
	}
	if p := g.getPlayerByID(playerID); p != nil && p.Connected {
		g.BroadcastToPlayerFn(playerID, ev)
	}
}

// broadcastLobby announces the roster and ready flags.
// Assumes lock is held by caller.
func (g *DealGame) broadcastLobby() {
	roster := make([]map[string]interface{}, len(g.Players))
	for i, p := range g.Players {
		roster[i] = map[string]interface{}{
			"id":        p.ID.String(),
			"username":  p.Name(),
			"isReady":   p.IsReady,
			"connected": p.Connected,
		}
	}
	g.fireEvent(GameEvent{Type: EventLobbyUpdate, Payload: map[string]interface{}{"players": roster}})
}

// getPlayerByID finds a seated player, or returns nil.
// Assumes lock is held by caller.
func (g *DealGame) getPlayerByID(playerID uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// currentPlayerID returns the seat holding the turn, or Nil before the deal.
func (g *DealGame) currentPlayerID() uuid.UUID {
	if g.Engine == nil || !g.Engine.IsStarted {
		return uuid.Nil
	}
	return playerUUID(g.Engine.CurrentPlayer().ID)
}

// enginePlayerID maps a service player to its engine identity.
func enginePlayerID(id uuid.UUID) engine.PlayerID { return engine.PlayerID(id.String()) }

// playerUUID maps an engine identity back to the service player. Unknown ids map to Nil.
func playerUUID(id engine.PlayerID) uuid.UUID {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil
	}
	return u
}
