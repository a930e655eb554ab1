package engine

import (
	"reflect"
	"testing"
)

func TestAwaitingPlayers(t *testing.T) {
	g := newTestGame(t, 3)
	tests := []struct {
		name    string
		pending PendingAction
		want    []PlayerID
	}{
		{"none", nil, []PlayerID{"p1"}},
		{"sly deal", &SlyDealPending{PlayerID: "p1"}, []PlayerID{"p1"}},
		{"debt", &DebtCollectorPending{PlayerID: "p1", Amount: 5, TargetPlayerID: "p3"}, []PlayerID{"p3"}},
		{"rent", &RentPending{PlayerID: "p1", Amount: 2, RemainingPayers: []PlayerID{"p3", "p2"}}, []PlayerID{"p3", "p2"}},
		{"birthday", &BirthdayPending{PlayerID: "p1", Amount: 2, RemainingPayers: []PlayerID{"p2"}}, []PlayerID{"p2"}},
		{"discard", &DiscardPending{PlayerID: "p1"}, []PlayerID{"p1"}},
		{"interrupt", &JustSayNoPending{PlayerID: "p2", ActionType: PendingBirthday, SourcePlayerID: "p1"}, []PlayerID{"p2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Pending = tt.pending
			if got := g.AwaitingPlayers(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AwaitingPlayers = %v, want %v", got, tt.want)
			}
		})
	}

	g.Pending = nil
	g.WinnerID = "p1"
	if got := g.AwaitingPlayers(); got != nil {
		t.Errorf("finished game awaits %v", got)
	}
}

func TestStealTargets(t *testing.T) {
	g := newTestGame(t, 3)
	own(t, g, "p2", 2, isProperty(ColorBrown))
	own(t, g, "p3", 1, isProperty(ColorRed))
	if got := g.StealTargets("p1"); !reflect.DeepEqual(got, []PlayerID{"p3"}) {
		t.Errorf("StealTargets = %v, want [p3]", got)
	}
	if g.IsAwaiting("p2") || !g.IsAwaiting("p1") {
		t.Error("IsAwaiting disagrees with the current turn")
	}
}
