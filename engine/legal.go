package engine

// AwaitingPlayers returns the players whose input the game is waiting on.
// Without a pending action that is the current player; a finished or
// unstarted game waits on nobody.
func (g *GameState) AwaitingPlayers() []PlayerID {
	if !g.IsStarted || g.IsGameOver() {
		return nil
	}
	switch p := g.Pending.(type) {
	case nil:
		return []PlayerID{g.CurrentPlayer().ID}
	case *SlyDealPending:
		return []PlayerID{p.PlayerID}
	case *DealBreakerPending:
		return []PlayerID{p.PlayerID}
	case *ForcedDealPending:
		return []PlayerID{p.PlayerID}
	case *DoubleRentPending:
		return []PlayerID{p.PlayerID}
	case *DebtCollectorPending:
		return []PlayerID{p.TargetPlayerID}
	case *RentPending:
		return append([]PlayerID(nil), p.RemainingPayers...)
	case *BirthdayPending:
		return append([]PlayerID(nil), p.RemainingPayers...)
	case *DiscardPending:
		return []PlayerID{p.PlayerID}
	case *JustSayNoPending:
		return []PlayerID{p.PlayerID}
	}
	return nil
}

// IsAwaiting reports whether the game is waiting on id.
func (g *GameState) IsAwaiting(id PlayerID) bool {
	return containsPlayer(g.AwaitingPlayers(), id)
}

// StealTargets lists the opponents of actor who own a property outside a
// complete set.
func (g *GameState) StealTargets(actor PlayerID) []PlayerID {
	var out []PlayerID
	for _, id := range g.othersOf(actor) {
		if g.Player(id).hasStealable() {
			out = append(out, id)
		}
	}
	return out
}
