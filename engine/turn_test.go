package engine

import (
	"errors"
	"testing"
)

// TestStartTurnDraw verifies the draw is five on an empty hand and two otherwise.
func TestStartTurnDraw(t *testing.T) {
	g := newTestGame(t, 2)
	g.StartTurn()
	if got := len(g.Players[0].Hand); got != 5 {
		t.Errorf("empty-hand draw = %d, want 5", got)
	}
	g.StartTurn()
	if got := len(g.Players[0].Hand); got != 7 {
		t.Errorf("hand after second draw = %d, want 7", got)
	}
}

// TestStartTurnDeckExhausted verifies a short deck draws what is left without error.
func TestStartTurnDeckExhausted(t *testing.T) {
	g := newTestGame(t, 2)
	g.DiscardPile = append(g.DiscardPile, g.Deck[1:]...)
	g.Deck = g.Deck[:1]

	g.StartTurn()
	if got := len(g.Players[0].Hand); got != 1 {
		t.Errorf("hand = %d, want 1", got)
	}
	g.StartTurn()
	if got := len(g.Players[0].Hand); got != 1 {
		t.Errorf("hand = %d after empty deck, want 1", got)
	}
	checkConservation(t, g)
}

func TestStartTurnResetsCounters(t *testing.T) {
	g := newTestGame(t, 2)
	g.CardsPlayedThisTurn = 3
	g.WildCardReassignedThisTurn = true
	g.StartTurn()
	if g.CardsPlayedThisTurn != 0 || g.WildCardReassignedThisTurn {
		t.Errorf("counters not reset: played=%d reassigned=%v", g.CardsPlayedThisTurn, g.WildCardReassignedThisTurn)
	}
}

func TestEndTurnAdvances(t *testing.T) {
	g := newTestGame(t, 3)
	mustOK(t, g.EndTurn("p1"))
	if g.CurrentPlayer().ID != "p2" {
		t.Fatalf("current = %s, want p2", g.CurrentPlayer().ID)
	}
	if got := len(g.Player("p2").Hand); got != 5 {
		t.Errorf("p2 drew %d, want 5", got)
	}

	if err := g.EndTurn("p1"); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("EndTurn out of turn: err = %v", err)
	}

	mustOK(t, g.EndTurn("p2"))
	mustOK(t, g.EndTurn("p3"))
	if g.CurrentPlayer().ID != "p1" {
		t.Errorf("current = %s, want p1 after a full lap", g.CurrentPlayer().ID)
	}
}

func TestEndTurnBlockedByPending(t *testing.T) {
	g := newTestGame(t, 2)
	g.Pending = &SlyDealPending{PlayerID: "p1"}
	if err := g.EndTurn("p1"); !errors.Is(err, ErrPendingAction) {
		t.Errorf("err = %v, want ErrPendingAction", err)
	}
	if g.CurrentPlayer().ID != "p1" {
		t.Error("turn advanced despite pending action")
	}
}

// TestBudgetAutoEndsTurn verifies the third play ends the turn.
func TestBudgetAutoEndsTurn(t *testing.T) {
	g := newTestGame(t, 2)
	cards := []Card{give(t, g, "p1", isMoney(1)), give(t, g, "p1", isMoney(2)), give(t, g, "p1", isMoney(3))}

	mustOK(t, g.PlayCard("p1", cards[0].ID, PlayOptions{}))
	mustOK(t, g.PlayCard("p1", cards[1].ID, PlayOptions{}))
	if g.CurrentPlayer().ID != "p1" {
		t.Fatal("turn ended after two plays")
	}
	mustOK(t, g.PlayCard("p1", cards[2].ID, PlayOptions{}))
	if g.CurrentPlayer().ID != "p2" {
		t.Errorf("current = %s, want p2 after third play", g.CurrentPlayer().ID)
	}
	if g.CardsPlayedThisTurn != 0 {
		t.Errorf("CardsPlayedThisTurn = %d for new turn", g.CardsPlayedThisTurn)
	}
}

// TestWinAtEndTurn verifies three complete sets win when the turn ends, even two
// of the same color.
func TestWinAtEndTurn(t *testing.T) {
	g := newTestGame(t, 2)
	own(t, g, "p1", 2, isProperty(ColorBrown))
	own(t, g, "p1", 2, isProperty(ColorBlue))
	own(t, g, "p1", 2, isProperty(ColorUtility))

	mustOK(t, g.EndTurn("p1"))
	if g.WinnerID != "p1" {
		t.Fatalf("WinnerID = %q, want p1", g.WinnerID)
	}
	if g.CurrentPlayer().ID != "p1" {
		t.Error("turn advanced after win")
	}
	if err := g.EndTurn("p1"); !errors.Is(err, ErrGameOver) {
		t.Errorf("EndTurn after win: err = %v, want ErrGameOver", err)
	}
}

// TestDiscardEnforcement verifies a hand over the limit must be cut down before
// the turn passes.
func TestDiscardEnforcement(t *testing.T) {
	g := newTestGame(t, 2)
	var hand []Card
	for i := 0; i < 9; i++ {
		hand = append(hand, give(t, g, "p1", func(c Card) bool { return c.Kind == KindMoney || c.Kind == KindRent }))
	}

	mustOK(t, g.EndTurn("p1"))
	pending, ok := g.Pending.(*DiscardPending)
	if !ok || pending.PlayerID != "p1" {
		t.Fatalf("Pending = %#v, want DISCARD_NEEDED for p1", g.Pending)
	}

	if err := g.DiscardCards("p1", ids(hand[0])); !errors.Is(err, ErrDiscardCount) {
		t.Errorf("one card: err = %v, want ErrDiscardCount", err)
	}
	if err := g.DiscardCards("p1", ids(hand[0], hand[0])); !errors.Is(err, ErrDiscardCount) {
		t.Errorf("duplicate: err = %v, want ErrDiscardCount", err)
	}
	if err := g.DiscardCards("p2", ids(hand[0], hand[1])); !errors.Is(err, ErrNotResponder) {
		t.Errorf("wrong player: err = %v, want ErrNotResponder", err)
	}
	if len(g.Player("p1").Hand) != 9 {
		t.Fatal("failed discard changed the hand")
	}

	mustOK(t, g.DiscardCards("p1", ids(hand[0], hand[1])))
	if got := len(g.Player("p1").Hand); got != 7 {
		t.Errorf("hand = %d, want 7", got)
	}
	if g.Pending != nil || g.CurrentPlayer().ID != "p2" {
		t.Errorf("after discard: pending=%v current=%s", g.Pending, g.CurrentPlayer().ID)
	}
	checkConservation(t, g)
}

// TestWinCheckedBeforeDiscard verifies a winning player is not asked to discard.
func TestWinCheckedBeforeDiscard(t *testing.T) {
	g := newTestGame(t, 2)
	own(t, g, "p1", 2, isProperty(ColorBrown))
	own(t, g, "p1", 2, isProperty(ColorBlue))
	own(t, g, "p1", 2, isProperty(ColorUtility))
	for i := 0; i < 8; i++ {
		give(t, g, "p1", isAction(ActionPassGo))
	}
	mustOK(t, g.EndTurn("p1"))
	if g.WinnerID != "p1" || g.Pending != nil {
		t.Errorf("WinnerID=%q Pending=%v", g.WinnerID, g.Pending)
	}
}
