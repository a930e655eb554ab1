package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotKey(t *testing.T) {
	id := uuid.MustParse("2b1f6a5e-3c44-4f8e-9a57-0c1d2e3f4a5b")
	assert.Equal(t, "room:2b1f6a5e-3c44-4f8e-9a57-0c1d2e3f4a5b:snapshot", SnapshotKey(id))
}

func TestGameActionRecordJSON(t *testing.T) {
	rec := GameActionRecord{
		GameID:        uuid.New(),
		ActionIndex:   3,
		ActorUserID:   uuid.Nil,
		ActionType:    "pay_rent",
		ActionPayload: map[string]interface{}{"bankrupt": true},
		Timestamp:     1700000000000,
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, rec.GameID.String(), raw["gameId"])
	assert.Equal(t, "pay_rent", raw["actionType"])
	assert.Equal(t, float64(3), raw["actionIndex"])
	assert.Equal(t, map[string]interface{}{"bankrupt": true}, raw["actionPayload"])
}

// TestUninitializedClient verifies every operation fails cleanly without Redis.
func TestUninitializedClient(t *testing.T) {
	Rdb = nil
	ctx := context.Background()
	assert.Error(t, PublishGameAction(ctx, GameActionRecord{}))
	assert.Error(t, StoreSnapshot(ctx, uuid.New(), []byte("{}"), time.Minute))
	_, err := LoadSnapshot(ctx, uuid.New())
	assert.Error(t, err)
	assert.NoError(t, DeleteSnapshot(ctx, uuid.New()))
	Close()
}
