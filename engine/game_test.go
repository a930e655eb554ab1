package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestNewGameValidatesSeats(t *testing.T) {
	rules := DefaultHouseRules()
	if _, err := NewGame("r", []Seat{{ID: "a"}}, 1, rules); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("one seat: err = %v, want ErrNotEnoughPlayers", err)
	}
	six := []Seat{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}, {ID: "f"}}
	if _, err := NewGame("r", six, 1, rules); !errors.Is(err, ErrTooManyPlayers) {
		t.Errorf("six seats: err = %v, want ErrTooManyPlayers", err)
	}
	if _, err := NewGame("r", []Seat{{ID: "a"}, {ID: "a"}}, 1, rules); !errors.Is(err, ErrDuplicatePlayer) {
		t.Errorf("duplicate seat: err = %v, want ErrDuplicatePlayer", err)
	}
}

// TestNewGameSeedZero verifies that seed 0 is corrected to 1.
func TestNewGameSeedZero(t *testing.T) {
	g, err := NewGame("r", []Seat{{ID: "a"}, {ID: "b"}}, 0, DefaultHouseRules())
	mustOK(t, err)
	if g.RNG != 1 {
		t.Errorf("RNG = %d, want 1 for seed=0", g.RNG)
	}
}

func TestDealOpeningHands(t *testing.T) {
	g, err := NewGame("r", []Seat{{ID: "a"}, {ID: "b"}, {ID: "c"}}, 7, DefaultHouseRules())
	mustOK(t, err)
	mustOK(t, g.Deal())

	if !g.IsStarted || g.CurrentPlayerIndex != 0 {
		t.Fatalf("IsStarted=%v CurrentPlayerIndex=%d", g.IsStarted, g.CurrentPlayerIndex)
	}
	wantHands := []int{7, 5, 5}
	for i, want := range wantHands {
		if got := len(g.Players[i].Hand); got != want {
			t.Errorf("player %d hand = %d, want %d", i, got, want)
		}
	}
	if len(g.Deck) != 104-17 {
		t.Errorf("deck = %d, want %d", len(g.Deck), 104-17)
	}
	checkConservation(t, g)

	if err := g.Deal(); err == nil {
		t.Error("second Deal succeeded")
	}
}

// TestDealDeterministic verifies the same seed yields the same shuffle.
func TestDealDeterministic(t *testing.T) {
	deal := func(seed uint64) []Card {
		g, err := NewGame("r", []Seat{{ID: "a"}, {ID: "b"}}, seed, DefaultHouseRules())
		mustOK(t, err)
		mustOK(t, g.Deal())
		return g.Deck
	}
	if !reflect.DeepEqual(deal(99), deal(99)) {
		t.Error("same seed produced different decks")
	}
	if reflect.DeepEqual(deal(99), deal(100)) {
		t.Error("different seeds produced identical decks")
	}
}

func TestOthersOfSeatOrder(t *testing.T) {
	g := newTestGame(t, 4)
	got := g.othersOf("p3")
	want := []PlayerID{"p4", "p1", "p2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("othersOf(p3) = %v, want %v", got, want)
	}
}

// TestCloneIsDeep verifies mutations to a clone never reach the original.
func TestCloneIsDeep(t *testing.T) {
	g := newTestGame(t, 2)
	own(t, g, "p1", 1, isProperty(ColorBrown))
	g.Pending = &RentPending{PlayerID: "p1", Amount: 1, RemainingPayers: []PlayerID{"p2"}}

	c := g.Clone()
	c.Players[0].Properties[0].Sets[0].Cards[0].Name = "changed"
	c.Pending.(*RentPending).RemainingPayers[0] = "zz"
	c.Deck[0].Name = "changed"

	if g.Players[0].Properties[0].Sets[0].Cards[0].Name == "changed" {
		t.Error("property card shared with clone")
	}
	if g.Pending.(*RentPending).RemainingPayers[0] != "p2" {
		t.Error("pending payers shared with clone")
	}
	if g.Deck[0].Name == "changed" {
		t.Error("deck shared with clone")
	}
}

func TestSaveRestore(t *testing.T) {
	g := newTestGame(t, 2)
	give(t, g, "p1", isMoney(5))
	snap := g.Save()

	mustOK(t, g.PlayCard("p1", g.Players[0].Hand[0].ID, PlayOptions{}))
	if len(g.Players[0].MoneyPile) != 1 {
		t.Fatalf("money pile = %d, want 1", len(g.Players[0].MoneyPile))
	}

	g.Restore(snap)
	if len(g.Players[0].MoneyPile) != 0 || len(g.Players[0].Hand) != 1 || g.CardsPlayedThisTurn != 0 {
		t.Errorf("restore did not rewind: money=%d hand=%d played=%d",
			len(g.Players[0].MoneyPile), len(g.Players[0].Hand), g.CardsPlayedThisTurn)
	}
}

// TestSnapshotJSON verifies the broadcast snapshot carries the tagged pending action
// and decodes back to the same state.
func TestSnapshotJSON(t *testing.T) {
	g := newTestGame(t, 3)
	own(t, g, "p1", 1, isProperty(ColorRed))
	g.Pending = &JustSayNoPending{
		PlayerID:       "p2",
		ActionType:     PendingRent,
		SourcePlayerID: "p1",
		Color:          ColorRed,
		Amount:         4,
		IsDoubled:      true,
	}

	data, err := json.Marshal(g)
	mustOK(t, err)

	var raw map[string]any
	mustOK(t, json.Unmarshal(data, &raw))
	pending, ok := raw["pendingAction"].(map[string]any)
	if !ok {
		t.Fatalf("pendingAction missing from %s", data)
	}
	if pending["type"] != "JUST_SAY_NO_OPPORTUNITY" || pending["actionType"] != "RENT" || pending["color"] != "Red" {
		t.Errorf("pendingAction = %v", pending)
	}

	var back GameState
	mustOK(t, json.Unmarshal(data, &back))
	if !reflect.DeepEqual(back.Pending, g.Pending) {
		t.Errorf("pending = %#v, want %#v", back.Pending, g.Pending)
	}
	if !reflect.DeepEqual(back.Players[0].Properties, g.Players[0].Properties) {
		t.Errorf("properties did not round-trip")
	}
}

func TestSnapshotJSONNoPending(t *testing.T) {
	g := newTestGame(t, 2)
	data, err := json.Marshal(g)
	mustOK(t, err)

	var back GameState
	back.Pending = &DiscardPending{PlayerID: "stale"}
	mustOK(t, json.Unmarshal(data, &back))
	if back.Pending != nil {
		t.Errorf("pending = %#v, want nil", back.Pending)
	}
}
