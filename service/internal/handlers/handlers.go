// internal/handlers/handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monodeal/engine"
	"github.com/jason-s-yu/monodeal/service/internal/cache"
	"github.com/jason-s-yu/monodeal/service/internal/database"
	"github.com/jason-s-yu/monodeal/service/internal/game"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Handler serves the room API and the room WebSocket endpoint.
type Handler struct {
	Store          *game.GameStore
	Rules          engine.HouseRules
	Seed           uint64 // zero shuffles from the clock
	SnapshotTTL    time.Duration
	AllowedOrigins []string
}

// NewHandler returns a Handler creating rooms with rules.
func NewHandler(store *game.GameStore, rules engine.HouseRules) *Handler {
	return &Handler{
		Store:          store,
		Rules:          rules,
		SnapshotTTL:    24 * time.Hour,
		AllowedOrigins: []string{"*"},
	}
}

// Routes registers every endpoint on a new mux wrapped in CORS handling.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("POST /rooms", h.createRoom)
	mux.HandleFunc("GET /rooms/{id}", h.getRoom)
	mux.HandleFunc("GET /rooms/{id}/results", h.roomResults)
	mux.HandleFunc("GET /rooms/{id}/ws", h.roomSocket)
	mux.HandleFunc("GET /games/{id}/result", h.gameResult)

	c := cors.New(cors.Options{
		AllowedOrigins: h.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(mux)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "rooms": h.Store.Len()})
}

// createRoom opens an empty room and wires its broadcast callbacks.
func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	g := h.Store.CreateRoom(h.Rules)
	g.Mu.Lock()
	g.Seed = h.Seed
	g.SnapshotTTL = h.SnapshotTTL
	g.BroadcastFn = broadcaster(g)
	g.BroadcastToPlayerFn = privateSender(g)
	g.OnGameEnd = func(roomID, winner uuid.UUID) {
		log.WithField("room", roomID).Infof("Game over, winner %s.", winner)
	}
	g.Mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]interface{}{"roomId": g.RoomID.String()})
}

// getRoom returns the spectator view of a room. Rooms hosted elsewhere are
// served from the Redis snapshot when one exists.
func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathUUID(w, r)
	if !ok {
		return
	}
	if g := h.Store.GetRoom(roomID); g != nil {
		g.Mu.Lock()
		view := g.GetCurrentObfuscatedGameState(uuid.Nil)
		g.Mu.Unlock()
		writeJSON(w, http.StatusOK, view)
		return
	}
	if cache.Rdb != nil {
		data, err := cache.LoadSnapshot(r.Context(), roomID)
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
		if !errors.Is(err, cache.ErrNoSnapshot) {
			log.WithField("room", roomID).Warnf("loading snapshot: %v", err)
		}
	}
	writeError(w, http.StatusNotFound, "room not found")
}

func (h *Handler) roomResults(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathUUID(w, r)
	if !ok {
		return
	}
	if database.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "results archive not configured")
		return
	}
	results, err := database.ListRoomResults(r.Context(), roomID, 20)
	if err != nil {
		log.WithField("room", roomID).Errorf("listing results: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load results")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) gameResult(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r)
	if !ok {
		return
	}
	if database.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "results archive not configured")
		return
	}
	res, err := database.GetGameResult(r.Context(), gameID)
	switch {
	case errors.Is(err, database.ErrResultNotFound):
		writeError(w, http.StatusNotFound, "result not found")
	case err != nil:
		log.WithField("game", gameID).Errorf("loading result: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load result")
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
