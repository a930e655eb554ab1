package engine

import "fmt"

// Eligible returns the cards p can pay with: the money pile followed by every
// property card.
func (p *Player) Eligible() []Card {
	out := make([]Card, 0, len(p.MoneyPile))
	out = append(out, p.MoneyPile...)
	return append(out, p.propertyCards()...)
}

// settle moves cardIDs from payer to collector in payment of amount.
// Nothing moves unless the whole selection is valid.
func settle(payer, collector *Player, amount int, cardIDs []CardID, bankrupt bool) error {
	eligible := payer.Eligible()
	byID := make(map[CardID]Card, len(eligible))
	for _, c := range eligible {
		byID[c.ID] = c
	}

	selected := make(map[CardID]bool, len(cardIDs))
	paid := 0
	for _, id := range cardIDs {
		c, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: card %d is not in play for %s", ErrInvalidPayment, id, payer.ID)
		}
		if selected[id] {
			return fmt.Errorf("%w: card %d listed twice", ErrInvalidPayment, id)
		}
		selected[id] = true
		paid += c.Value
	}

	if bankrupt {
		if total := TotalValue(eligible); total >= amount {
			return fmt.Errorf("%w: holds %d against %d owed", ErrInvalidBankruptcy, total, amount)
		}
		if len(selected) != len(eligible) {
			return fmt.Errorf("%w: all %d cards must be surrendered", ErrInvalidBankruptcy, len(eligible))
		}
	} else if paid < amount {
		return fmt.Errorf("%w: paid %d of %d", ErrInsufficientPayment, paid, amount)
	}

	for _, id := range cardIDs {
		if i := indexOf(payer.MoneyPile, id); i >= 0 {
			c := payer.MoneyPile[i]
			payer.MoneyPile = append(payer.MoneyPile[:i:i], payer.MoneyPile[i+1:]...)
			collector.MoneyPile = append(collector.MoneyPile, c)
			continue
		}
		loc, _ := payer.locateProperty(id)
		collector.addProperty(payer.removeProperty(loc))
	}
	return nil
}

func indexOf(cards []Card, id CardID) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// CollectDebt settles DEBT_COLLECTOR: the target pays the fixed amount to the actor.
func (g *GameState) CollectDebt(playerID PlayerID, cardIDs []CardID, bankrupt bool) error {
	if err := g.requireLive(); err != nil {
		return err
	}
	pending, ok := g.Pending.(*DebtCollectorPending)
	if !ok {
		return fmt.Errorf("pay debt: %w", ErrWrongPending)
	}
	if pending.TargetPlayerID != playerID {
		return fmt.Errorf("pay debt: %w", ErrNotResponder)
	}
	if err := settle(g.Player(playerID), g.Player(pending.PlayerID), pending.Amount, cardIDs, bankrupt); err != nil {
		return fmt.Errorf("pay debt: %w", err)
	}
	g.Pending = nil
	g.record("Payment", playerID, pending.PlayerID, 0)
	g.finishAction()
	return nil
}

// CollectRent settles one payer's share of RENT.
func (g *GameState) CollectRent(playerID PlayerID, cardIDs []CardID, bankrupt bool) error {
	if err := g.requireLive(); err != nil {
		return err
	}
	pending, ok := g.Pending.(*RentPending)
	if !ok {
		return fmt.Errorf("pay rent: %w", ErrWrongPending)
	}
	if !containsPlayer(pending.RemainingPayers, playerID) {
		return fmt.Errorf("pay rent: %w", ErrNotResponder)
	}
	if err := settle(g.Player(playerID), g.Player(pending.PlayerID), pending.Amount, cardIDs, bankrupt); err != nil {
		return fmt.Errorf("pay rent: %w", err)
	}
	pending.RemainingPayers, _ = removePayer(pending.RemainingPayers, playerID)
	if len(pending.RemainingPayers) == 0 {
		g.Pending = nil
	}
	g.record("Payment", playerID, pending.PlayerID, 0)
	g.finishAction()
	return nil
}

// CollectBirthdayPayment settles one payer's gift for BIRTHDAY.
func (g *GameState) CollectBirthdayPayment(playerID PlayerID, cardIDs []CardID, bankrupt bool) error {
	if err := g.requireLive(); err != nil {
		return err
	}
	pending, ok := g.Pending.(*BirthdayPending)
	if !ok {
		return fmt.Errorf("pay birthday: %w", ErrWrongPending)
	}
	if !containsPlayer(pending.RemainingPayers, playerID) {
		return fmt.Errorf("pay birthday: %w", ErrNotResponder)
	}
	if err := settle(g.Player(playerID), g.Player(pending.PlayerID), pending.Amount, cardIDs, bankrupt); err != nil {
		return fmt.Errorf("pay birthday: %w", err)
	}
	pending.RemainingPayers, _ = removePayer(pending.RemainingPayers, playerID)
	if len(pending.RemainingPayers) == 0 {
		g.Pending = nil
	}
	g.record("Payment", playerID, pending.PlayerID, 0)
	g.finishAction()
	return nil
}
