package engine

import "fmt"

// counterHolder returns the first player after actor in seat order who holds a
// Just Say No, or "" when nobody does.
func (g *GameState) counterHolder(actor PlayerID) PlayerID {
	for _, id := range g.othersOf(actor) {
		if g.Player(id).counterIndex() >= 0 {
			return id
		}
	}
	return ""
}

// RespondToJustSayNo resolves JUST_SAY_NO_OPPORTUNITY. With useCounter the
// responder spends a Just Say No and the attack is cancelled; otherwise the
// suspended attack resumes against the players it originally aimed at.
func (g *GameState) RespondToJustSayNo(playerID PlayerID, useCounter bool) error {
	if err := g.requireLive(); err != nil {
		return err
	}
	pending, ok := g.Pending.(*JustSayNoPending)
	if !ok {
		return fmt.Errorf("just say no: %w", ErrWrongPending)
	}
	if pending.PlayerID != playerID {
		return fmt.Errorf("just say no: %w", ErrNotResponder)
	}
	p := g.Player(playerID)

	if useCounter {
		idx := p.counterIndex()
		if idx < 0 {
			return fmt.Errorf("just say no: %w", ErrNoCounterCard)
		}
		card := p.takeFromHand(idx)
		g.DiscardPile = append(g.DiscardPile, card)
		g.Pending = nil
		g.record(ActionJustSayNo.String(), playerID, pending.SourcePlayerID, card.ID)
		g.finishAction()
		return nil
	}

	src := pending.SourcePlayerID
	switch pending.ActionType {
	case PendingRent:
		g.Pending = &RentPending{
			PlayerID:        src,
			Color:           pending.Color,
			Amount:          pending.Amount,
			RemainingPayers: g.othersOf(src),
			IsDoubled:       pending.IsDoubled,
		}
	case PendingBirthday:
		g.Pending = &BirthdayPending{PlayerID: src, Amount: pending.Amount, RemainingPayers: g.othersOf(src)}
	case PendingDebtCollector:
		g.Pending = &DebtCollectorPending{PlayerID: src, Amount: pending.Amount, TargetPlayerID: playerID}
	case PendingSlyDeal:
		return g.resume(pending, &SlyDealPending{PlayerID: src}, func() error {
			return g.stealProperty(src, playerID, pending.TargetCardID, false)
		})
	case PendingDealBreaker:
		return g.resume(pending, &DealBreakerPending{PlayerID: src}, func() error {
			return g.breakDeal(src, playerID, pending.Color, false)
		})
	case PendingForcedDeal:
		return g.resume(pending, &ForcedDealPending{PlayerID: src}, func() error {
			return g.forceDeal(src, playerID, pending.TargetCardID, pending.MyCardID, false)
		})
	default:
		return fmt.Errorf("just say no: %w: cannot resume %s", ErrWrongPending, pending.ActionType)
	}
	g.record("Allowed", playerID, src, 0)
	return nil
}

// resume reinstalls the suspended attack and runs it against the captured
// target. The interrupt stays in place if the attack no longer applies.
func (g *GameState) resume(jsn *JustSayNoPending, attack PendingAction, run func() error) error {
	g.Pending = attack
	if err := run(); err != nil {
		g.Pending = jsn
		return fmt.Errorf("just say no: %w", err)
	}
	return nil
}
