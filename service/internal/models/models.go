// internal/models/models.go
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// User is the public identity a player joins a room with.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Player is a seat in a room together with its live connection, if any.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	User      *User           `json:"user"`
	Connected bool            `json:"connected"`
	IsReady   bool            `json:"isReady"`
	Conn      *websocket.Conn `json:"-"`
}

// Name returns the display name of the player.
func (p *Player) Name() string {
	if p.User != nil && p.User.Username != "" {
		return p.User.Username
	}
	return p.ID.String()
}

// GameAction is an inbound request from a client.
type GameAction struct {
	ActionType string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// ActionResult is returned for every GameAction. A false Success means the game
// state did not change.
type ActionResult struct {
	Success          bool   `json:"success"`
	NotificationType string `json:"notificationType,omitempty"` // named action to announce
	Player           string `json:"player,omitempty"`           // display name of the acting player
	Error            string `json:"error,omitempty"`
}
