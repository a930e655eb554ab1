package database

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUninitializedPool(t *testing.T) {
	DB = nil
	ctx := context.Background()

	// Must not panic without a pool.
	StoreFinalGameStateInDB(ctx, uuid.New(), uuid.New(), "", []byte("{}"))

	_, err := GetGameResult(ctx, uuid.New())
	assert.Error(t, err)
	_, err = ListRoomResults(ctx, uuid.New(), 10)
	assert.Error(t, err)
	Close()
}

// TestArchiveRoundTrip needs a live Postgres in TEST_DATABASE_URL.
func TestArchiveRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	require.NoError(t, ConnectDB(ctx, url))
	defer Close()

	gameID, roomID := uuid.New(), uuid.New()
	StoreFinalGameStateInDB(ctx, gameID, roomID, "winner", []byte(`{"winnerId":"winner"}`))

	res, err := GetGameResult(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, roomID, res.RoomID)
	assert.Equal(t, "winner", res.WinnerID)
	assert.JSONEq(t, `{"winnerId":"winner"}`, string(res.FinalState))

	list, err := ListRoomResults(ctx, roomID, 5)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = GetGameResult(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrResultNotFound)
}
