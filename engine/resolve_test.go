package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestPropertySteal(t *testing.T) {
	g := newTestGame(t, 3)
	loose := own(t, g, "p2", 1, isProperty(ColorRed))[0]
	g.Pending = &SlyDealPending{PlayerID: "p1"}

	mustOK(t, g.ExecutePropertySteal("p1", "p2", loose.ID))
	if g.Player("p2").HasColor(ColorRed) || !g.Player("p1").HasColor(ColorRed) {
		t.Error("property did not move")
	}
	if g.Pending != nil {
		t.Errorf("Pending = %v, want none", g.Pending)
	}
	checkConservation(t, g)
}

// TestStealRefusesCompleteSet verifies a complete set never shrinks by theft.
func TestStealRefusesCompleteSet(t *testing.T) {
	g := newTestGame(t, 2)
	set := own(t, g, "p2", 2, isProperty(ColorBrown))
	g.Pending = &SlyDealPending{PlayerID: "p1"}
	before := g.Clone()

	err := g.ExecutePropertySteal("p1", "p2", set[0].ID)
	if !errors.Is(err, ErrSetComplete) {
		t.Fatalf("err = %v, want ErrSetComplete", err)
	}
	if !reflect.DeepEqual(g, before) {
		t.Error("refused steal mutated state")
	}
}

func TestPropertyStealValidation(t *testing.T) {
	g := newTestGame(t, 3)
	loose := own(t, g, "p2", 1, isProperty(ColorRed))[0]
	mine := own(t, g, "p1", 1, isProperty(ColorPink))[0]
	g.Pending = &SlyDealPending{PlayerID: "p1"}

	tests := []struct {
		name   string
		actor  PlayerID
		target PlayerID
		card   CardID
		want   error
	}{
		{"not the actor", "p2", "p3", loose.ID, ErrNotResponder},
		{"self target", "p1", "p1", mine.ID, ErrInvalidTarget},
		{"unknown target", "p1", "zz", loose.ID, ErrInvalidTarget},
		{"card elsewhere", "p1", "p3", loose.ID, ErrCardNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.ExecutePropertySteal(tt.actor, tt.target, tt.card); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestDealBreakerTakesUpgrades verifies a complete set moves whole, houses included.
func TestDealBreakerTakesUpgrades(t *testing.T) {
	g := newTestGame(t, 2)
	own(t, g, "p2", 2, isProperty(ColorBlue))
	g.Player("p2").Properties[0].Sets[0].Houses = 1
	own(t, g, "p2", 1, isProperty(ColorRed))
	g.Pending = &DealBreakerPending{PlayerID: "p1"}

	if err := g.ExecuteDealBreaker("p1", "p2", ColorRed); !errors.Is(err, ErrSetIncomplete) {
		t.Errorf("incomplete set: err = %v", err)
	}
	if err := g.ExecuteDealBreaker("p1", "p2", ColorGreen); !errors.Is(err, ErrColorNotOwned) {
		t.Errorf("unowned color: err = %v", err)
	}

	mustOK(t, g.ExecuteDealBreaker("p1", "p2", ColorBlue))
	sets := g.Player("p1").SetsOf(ColorBlue)
	if len(sets) != 1 || len(sets[0].Cards) != 2 || sets[0].Houses != 1 {
		t.Errorf("actor blue sets = %+v", sets)
	}
	if g.Player("p2").HasColor(ColorBlue) {
		t.Error("target kept blue")
	}
	checkConservation(t, g)
}

func TestForcedDealSwaps(t *testing.T) {
	g := newTestGame(t, 2)
	theirs := own(t, g, "p2", 1, isProperty(ColorGreen))[0]
	mine := own(t, g, "p1", 1, isProperty(ColorOrange))[0]
	completeMine := own(t, g, "p1", 2, isProperty(ColorUtility))
	g.Pending = &ForcedDealPending{PlayerID: "p1"}

	if err := g.ExecuteForcedDeal("p1", "p2", theirs.ID, completeMine[0].ID); !errors.Is(err, ErrSetComplete) {
		t.Errorf("give from complete set: err = %v", err)
	}

	mustOK(t, g.ExecuteForcedDeal("p1", "p2", theirs.ID, mine.ID))
	actor, target := g.Player("p1"), g.Player("p2")
	if !actor.HasColor(ColorGreen) || actor.HasColor(ColorOrange) {
		t.Errorf("actor properties = %+v", actor.Properties)
	}
	if !target.HasColor(ColorOrange) || target.HasColor(ColorGreen) {
		t.Errorf("target properties = %+v", target.Properties)
	}
	checkConservation(t, g)
}

// TestResolutionWithoutPendingIsInert verifies every resolution operation fails
// without side effects when its pending action is not active.
func TestResolutionWithoutPendingIsInert(t *testing.T) {
	g := newTestGame(t, 3)
	red := own(t, g, "p2", 1, isProperty(ColorRed))[0]
	mine := own(t, g, "p1", 1, isProperty(ColorPink))[0]
	money := bank(t, g, "p2", isMoney(5))
	give(t, g, "p2", isAction(ActionJustSayNo))
	g.Pending = &BirthdayPending{PlayerID: "p1", Amount: 2, RemainingPayers: []PlayerID{"p3"}}
	before := g.Clone()

	ops := map[string]func() error{
		"steal":       func() error { return g.ExecutePropertySteal("p1", "p2", red.ID) },
		"deal":        func() error { return g.ExecuteDealBreaker("p1", "p2", ColorRed) },
		"forced":      func() error { return g.ExecuteForcedDeal("p1", "p2", red.ID, mine.ID) },
		"debt":        func() error { return g.CollectDebt("p2", ids(money), false) },
		"rent":        func() error { return g.CollectRent("p2", ids(money), false) },
		"just say no": func() error { return g.RespondToJustSayNo("p2", true) },
		"discard":     func() error { return g.DiscardCards("p1", nil) },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrWrongPending) {
			t.Errorf("%s: err = %v, want ErrWrongPending", name, err)
		}
		if !reflect.DeepEqual(g, before) {
			t.Fatalf("%s mutated state", name)
		}
	}
}
