// internal/database/db.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// DB is the shared connection pool. It stays nil when no database is configured.
var DB *pgxpool.Pool

// ErrResultNotFound is returned when no archived result exists for a game.
var ErrResultNotFound = errors.New("game result not found")

const schema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id     UUID PRIMARY KEY,
	room_id     UUID NOT NULL,
	winner_id   TEXT NOT NULL DEFAULT '',
	final_state JSONB NOT NULL,
	ended_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ConnectDB opens the pool and creates the schema if needed.
func ConnectDB(ctx context.Context, url string) error {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return fmt.Errorf("create schema: %w", err)
	}
	DB = pool
	log.Info("Connected to Postgres")
	return nil
}

// Close releases the pool.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// GameResult is the archived outcome of a finished game.
type GameResult struct {
	GameID     uuid.UUID       `json:"gameId"`
	RoomID     uuid.UUID       `json:"roomId"`
	WinnerID   string          `json:"winnerId"`
	FinalState json.RawMessage `json:"finalState"`
	EndedAt    time.Time       `json:"endedAt"`
}

// StoreFinalGameStateInDB archives the final state of a game. Failures are
// logged; archiving never affects play.
func StoreFinalGameStateInDB(ctx context.Context, gameID, roomID uuid.UUID, winnerID string, finalState []byte) {
	if DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := DB.Exec(ctx, `
		INSERT INTO game_results (game_id, room_id, winner_id, final_state)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id) DO UPDATE
		SET winner_id = EXCLUDED.winner_id, final_state = EXCLUDED.final_state, ended_at = now()`,
		gameID, roomID, winnerID, finalState)
	if err != nil {
		log.WithFields(log.Fields{"game": gameID, "room": roomID}).Errorf("storing final game state: %v", err)
	}
}

// GetGameResult loads the archived result of a game.
func GetGameResult(ctx context.Context, gameID uuid.UUID) (*GameResult, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var res GameResult
	err := DB.QueryRow(ctx, `
		SELECT game_id, room_id, winner_id, final_state, ended_at
		FROM game_results WHERE game_id = $1`, gameID).
		Scan(&res.GameID, &res.RoomID, &res.WinnerID, &res.FinalState, &res.EndedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query game result: %w", err)
	}
	return &res, nil
}

// ListRoomResults returns the archived results of a room, newest first.
func ListRoomResults(ctx context.Context, roomID uuid.UUID, limit int) ([]GameResult, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	rows, err := DB.Query(ctx, `
		SELECT game_id, room_id, winner_id, final_state, ended_at
		FROM game_results WHERE room_id = $1
		ORDER BY ended_at DESC LIMIT $2`, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("query room results: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (GameResult, error) {
		var res GameResult
		err := row.Scan(&res.GameID, &res.RoomID, &res.WinnerID, &res.FinalState, &res.EndedAt)
		return res, err
	})
}
