// internal/handlers/ws.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/jason-s-yu/monodeal/service/internal/cache"
	"github.com/jason-s-yu/monodeal/service/internal/game"
	"github.com/jason-s-yu/monodeal/service/internal/models"
	log "github.com/sirupsen/logrus"
)

// Client messages handled by the room itself rather than the game.
const (
	msgReady = "ready"
	msgLeave = "leave"
)

const writeTimeout = 2 * time.Second

// Envelope is a server message that is not a GameEvent.
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// roomSocket joins the caller to a room. Query: playerId (to resume a seat)
// and name.
func (h *Handler) roomSocket(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathUUID(w, r)
	if !ok {
		return
	}
	g := h.Store.GetRoom(roomID)
	if g == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	playerID := uuid.New()
	if raw := r.URL.Query().Get("playerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid playerId")
			return
		}
		playerID = id
	}
	name := r.URL.Query().Get("name")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.AllowedOrigins})
	if err != nil {
		log.WithField("room", roomID).Warnf("websocket accept: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	ctx := r.Context()
	logger := log.WithFields(log.Fields{"room": roomID, "player": playerID})

	player := &models.Player{
		ID:        playerID,
		User:      &models.User{ID: playerID, Username: name},
		Connected: true,
		Conn:      conn,
	}
	g.Mu.Lock()
	joined := g.AddPlayer(player)
	g.Mu.Unlock()
	if !joined {
		return
	}
	logger.Info("Player connected.")
	send(ctx, conn, Envelope{Type: "welcome", Payload: map[string]interface{}{"playerId": playerID.String(), "roomId": roomID.String()}})

	for {
		var msg models.GameAction
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				logger.Debugf("read: %v", err)
			}
			break
		}
		if h.dispatch(ctx, g, conn, playerID, msg) {
			break
		}
	}

	g.Mu.Lock()
	for _, p := range g.Players {
		if p.ID == playerID && p.Conn == conn {
			g.HandleDisconnect(playerID)
			break
		}
	}
	empty := len(g.Players) == 0
	g.Mu.Unlock()
	logger.Info("Player disconnected.")

	if empty {
		h.Store.DeleteRoom(roomID)
		if err := cache.DeleteSnapshot(context.Background(), roomID); err != nil {
			logger.Warnf("deleting snapshot: %v", err)
		}
	}
}

// dispatch handles one client message and reports whether the client left.
func (h *Handler) dispatch(ctx context.Context, g *game.DealGame, conn *websocket.Conn, playerID uuid.UUID, msg models.GameAction) bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	switch msg.ActionType {
	case msgReady:
		if err := g.ToggleReady(playerID); err != nil {
			send(ctx, conn, Envelope{Type: "error", Payload: map[string]string{"message": err.Error()}})
		}
		return false
	case msgLeave:
		if !g.RemovePlayer(playerID) {
			send(ctx, conn, Envelope{Type: "error", Payload: map[string]string{"message": game.ErrGameInProgress.Error()}})
			return false
		}
		return true
	default:
		res := g.HandlePlayerAction(playerID, msg)
		send(ctx, conn, Envelope{Type: "action_result", Payload: res})
		return false
	}
}

// broadcaster sends ev to every connected player of g. It runs with g.Mu held.
func broadcaster(g *game.DealGame) func(ev game.GameEvent) {
	return func(ev game.GameEvent) {
		for _, p := range g.Players {
			if p.Connected && p.Conn != nil {
				send(context.Background(), p.Conn, ev)
			}
		}
	}
}

// privateSender sends ev to one player of g. It runs with g.Mu held.
func privateSender(g *game.DealGame) func(playerID uuid.UUID, ev game.GameEvent) {
	return func(playerID uuid.UUID, ev game.GameEvent) {
		for _, p := range g.Players {
			if p.ID == playerID && p.Conn != nil {
				send(context.Background(), p.Conn, ev)
				return
			}
		}
	}
}

func send(ctx context.Context, conn *websocket.Conn, v interface{}) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, v); err != nil {
		log.Debugf("websocket write: %v", err)
	}
}
