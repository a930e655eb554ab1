// internal/game/store.go
package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monodeal/engine"
	log "github.com/sirupsen/logrus"
)

// GameStore holds the live rooms of this process.
type GameStore struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*DealGame
}

// NewGameStore returns an empty store.
func NewGameStore() *GameStore {
	return &GameStore{rooms: make(map[uuid.UUID]*DealGame)}
}

// CreateRoom registers a new empty room.
func (s *GameStore) CreateRoom(rules engine.HouseRules) *DealGame {
	g := NewDealGame(uuid.New(), rules)
	s.mu.Lock()
	s.rooms[g.RoomID] = g
	s.mu.Unlock()
	log.Infof("Room %s created.", g.RoomID)
	return g
}

// GetRoom returns the room with id, or nil.
func (s *GameStore) GetRoom(id uuid.UUID) *DealGame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[id]
}

// DeleteRoom forgets a room.
func (s *GameStore) DeleteRoom(id uuid.UUID) {
	s.mu.Lock()
	delete(s.rooms, id)
	s.mu.Unlock()
	log.Infof("Room %s deleted.", id)
}

// Len reports the number of live rooms.
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
