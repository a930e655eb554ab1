package engine

import "fmt"

// requireAttacker checks that the pending action is of kind and was played by playerID.
func (g *GameState) requireAttacker(kind PendingKind, playerID PlayerID) error {
	if err := g.requireLive(); err != nil {
		return err
	}
	if KindOf(g.Pending) != kind {
		return ErrWrongPending
	}
	var actor PlayerID
	switch p := g.Pending.(type) {
	case *SlyDealPending:
		actor = p.PlayerID
	case *DealBreakerPending:
		actor = p.PlayerID
	case *ForcedDealPending:
		actor = p.PlayerID
	}
	if actor != playerID {
		return ErrNotResponder
	}
	return nil
}

// victim resolves the target of a theft.
func (g *GameState) victim(actor, targetID PlayerID) (*Player, error) {
	target := g.Player(targetID)
	if target == nil || target.ID == actor {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, targetID)
	}
	return target, nil
}

// loosePropertyAt locates a property that is not part of a complete set.
func loosePropertyAt(p *Player, cardID CardID) (propertyLoc, error) {
	loc, ok := p.locateProperty(cardID)
	if !ok {
		return loc, fmt.Errorf("%w: %d", ErrCardNotFound, cardID)
	}
	color, set := p.setAt(loc)
	if set.IsComplete(color) {
		return loc, fmt.Errorf("%w: %s", ErrSetComplete, color)
	}
	return loc, nil
}

// ExecutePropertySteal resolves SLY_DEAL: one property outside a complete set
// moves from the target to the actor.
func (g *GameState) ExecutePropertySteal(playerID, targetPlayerID PlayerID, targetCardID CardID) error {
	if err := g.requireAttacker(PendingSlyDeal, playerID); err != nil {
		return fmt.Errorf("property steal: %w", err)
	}
	return g.stealProperty(playerID, targetPlayerID, targetCardID, true)
}

func (g *GameState) stealProperty(actorID, targetID PlayerID, cardID CardID, allowCounter bool) error {
	target, err := g.victim(actorID, targetID)
	if err != nil {
		return fmt.Errorf("property steal: %w", err)
	}
	loc, err := loosePropertyAt(target, cardID)
	if err != nil {
		return fmt.Errorf("property steal: %w", err)
	}
	if allowCounter && target.counterIndex() >= 0 {
		g.Pending = &JustSayNoPending{
			PlayerID:       target.ID,
			ActionType:     PendingSlyDeal,
			SourcePlayerID: actorID,
			TargetCardID:   cardID,
		}
		g.record(ActionSlyDeal.String(), actorID, target.ID, cardID)
		return nil
	}

	card := target.removeProperty(loc)
	g.Player(actorID).addProperty(card)
	g.Pending = nil
	g.record(ActionSlyDeal.String(), actorID, target.ID, cardID)
	g.finishAction()
	return nil
}

// ExecuteDealBreaker resolves DEAL_BREAKER: the target's first complete set of
// color moves to the actor together with its houses and hotels.
func (g *GameState) ExecuteDealBreaker(playerID, targetPlayerID PlayerID, color Color) error {
	if err := g.requireAttacker(PendingDealBreaker, playerID); err != nil {
		return fmt.Errorf("deal breaker: %w", err)
	}
	return g.breakDeal(playerID, targetPlayerID, color, true)
}

func (g *GameState) breakDeal(actorID, targetID PlayerID, color Color, allowCounter bool) error {
	target, err := g.victim(actorID, targetID)
	if err != nil {
		return fmt.Errorf("deal breaker: %w", err)
	}
	if !color.Valid() {
		return fmt.Errorf("deal breaker: %w: %s", ErrInvalidColor, color)
	}
	ci, si := target.firstCompleteSet(color)
	if ci < 0 {
		return fmt.Errorf("deal breaker: %w: %s", ErrColorNotOwned, color)
	}
	if si < 0 {
		return fmt.Errorf("deal breaker: %w: %s", ErrSetIncomplete, color)
	}
	if allowCounter && target.counterIndex() >= 0 {
		g.Pending = &JustSayNoPending{
			PlayerID:       target.ID,
			ActionType:     PendingDealBreaker,
			SourcePlayerID: actorID,
			Color:          color,
		}
		g.record(ActionDealBreaker.String(), actorID, target.ID, 0)
		return nil
	}

	set := target.removeSet(ci, si)
	g.Player(actorID).addSet(color, set)
	g.Pending = nil
	g.record(ActionDealBreaker.String(), actorID, target.ID, 0)
	g.finishAction()
	return nil
}

// ExecuteForcedDeal resolves FORCED_DEAL: the actor swaps one of their loose
// properties for one of the target's.
func (g *GameState) ExecuteForcedDeal(playerID, targetPlayerID PlayerID, targetCardID, myCardID CardID) error {
	if err := g.requireAttacker(PendingForcedDeal, playerID); err != nil {
		return fmt.Errorf("forced deal: %w", err)
	}
	return g.forceDeal(playerID, targetPlayerID, targetCardID, myCardID, true)
}

func (g *GameState) forceDeal(actorID, targetID PlayerID, targetCardID, myCardID CardID, allowCounter bool) error {
	target, err := g.victim(actorID, targetID)
	if err != nil {
		return fmt.Errorf("forced deal: %w", err)
	}
	theirs, err := loosePropertyAt(target, targetCardID)
	if err != nil {
		return fmt.Errorf("forced deal: theirs: %w", err)
	}
	actor := g.Player(actorID)
	mine, err := loosePropertyAt(actor, myCardID)
	if err != nil {
		return fmt.Errorf("forced deal: yours: %w", err)
	}
	if allowCounter && target.counterIndex() >= 0 {
		g.Pending = &JustSayNoPending{
			PlayerID:       target.ID,
			ActionType:     PendingForcedDeal,
			SourcePlayerID: actorID,
			TargetCardID:   targetCardID,
			MyCardID:       myCardID,
		}
		g.record(ActionForcedDeal.String(), actorID, target.ID, targetCardID)
		return nil
	}

	taken := target.removeProperty(theirs)
	given := actor.removeProperty(mine)
	actor.addProperty(taken)
	target.addProperty(given)
	g.Pending = nil
	g.record(ActionForcedDeal.String(), actorID, target.ID, targetCardID)
	g.finishAction()
	return nil
}
