package engine

import "fmt"

// PlayOptions carries the optional arguments of PlayCard.
type PlayOptions struct {
	ChosenColor    Color    // wildcard color, or the color a rent/house/hotel acts on
	PlayAsAction   bool     // false banks an action or rent card as money
	TargetPlayerID PlayerID // Debt Collector victim
}

func (p *Player) handIndex(id CardID) int {
	for i, c := range p.Hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (p *Player) takeFromHand(idx int) Card {
	c := p.Hand[idx]
	p.Hand = append(p.Hand[:idx:idx], p.Hand[idx+1:]...)
	return c
}

// counterIndex returns the hand index of a Just Say No, or -1.
func (p *Player) counterIndex() int {
	for i, c := range p.Hand {
		if c.IsCounter() {
			return i
		}
	}
	return -1
}

// PlayCard plays a card from the current player's hand.
func (g *GameState) PlayCard(playerID PlayerID, cardID CardID, opts PlayOptions) error {
	if err := g.requireTurn(playerID); err != nil {
		return err
	}
	p := g.CurrentPlayer()
	idx := p.handIndex(cardID)
	if idx < 0 {
		return fmt.Errorf("play: %w: %d", ErrCardNotFound, cardID)
	}
	card := p.Hand[idx]

	// A pending Double The Rent only accepts the rent card it doubles.
	if _, ok := g.Pending.(*DoubleRentPending); ok {
		if card.Kind != KindRent || !opts.PlayAsAction {
			return fmt.Errorf("play: %w: a rent card must follow Double The Rent", ErrPendingAction)
		}
		return g.playRent(p, idx, opts.ChosenColor, true)
	}
	if g.Pending != nil {
		return fmt.Errorf("play: %w (%s)", ErrPendingAction, g.Pending.Kind())
	}
	if g.CardsPlayedThisTurn >= g.Rules.MaxCardsPerTurn {
		return ErrBudgetExhausted
	}

	switch {
	case card.Kind == KindProperty:
		return g.playProperty(p, idx, opts.ChosenColor)
	case card.Kind == KindMoney, !opts.PlayAsAction:
		return g.playMoney(p, idx)
	case card.Kind == KindRent:
		return g.playRent(p, idx, opts.ChosenColor, false)
	default:
		return g.playAction(p, idx, opts)
	}
}

// spend removes the played card from hand and charges it to the turn budget.
func (g *GameState) spend(p *Player, idx int) Card {
	g.CardsPlayedThisTurn++
	return p.takeFromHand(idx)
}

func (g *GameState) playMoney(p *Player, idx int) error {
	card := g.spend(p, idx)
	p.MoneyPile = append(p.MoneyPile, card)
	g.record("", p.ID, "", card.ID)
	g.finishAction()
	return nil
}

func (g *GameState) playProperty(p *Player, idx int, chosen Color) error {
	card := p.Hand[idx]
	if card.IsWildcard {
		if chosen == ColorNone {
			return fmt.Errorf("play wildcard: %w", ErrColorRequired)
		}
		if !card.CanTakeColor(chosen) {
			return fmt.Errorf("play wildcard: %w: %s", ErrInvalidColor, chosen)
		}
	}
	card = g.spend(p, idx)
	if card.IsWildcard {
		card.Color = chosen
	}
	p.addProperty(card)
	g.record("", p.ID, "", card.ID)
	g.finishAction()
	return nil
}

func (g *GameState) playRent(p *Player, idx int, color Color, doubled bool) error {
	card := p.Hand[idx]
	if color == ColorNone {
		return fmt.Errorf("play rent: %w", ErrColorRequired)
	}
	if !card.ChargesRentOn(color) {
		return fmt.Errorf("play rent: %w: %s", ErrInvalidColor, color)
	}
	if !p.HasColor(color) {
		return fmt.Errorf("play rent: %w: %s", ErrColorNotOwned, color)
	}
	amount := p.Rent(color, g.Rules)
	if doubled {
		amount *= 2
	}

	card = g.spend(p, idx)
	g.DiscardPile = append(g.DiscardPile, card)
	payers := g.othersOf(p.ID)
	if holder := g.counterHolder(p.ID); holder != "" {
		g.Pending = &JustSayNoPending{
			PlayerID:       holder,
			ActionType:     PendingRent,
			SourcePlayerID: p.ID,
			Color:          color,
			Amount:         amount,
			IsDoubled:      doubled,
		}
	} else {
		g.Pending = &RentPending{
			PlayerID:        p.ID,
			Color:           color,
			Amount:          amount,
			RemainingPayers: payers,
			IsDoubled:       doubled,
		}
	}
	g.record("Rent", p.ID, "", card.ID)
	g.finishAction()
	return nil
}

func (g *GameState) playAction(p *Player, idx int, opts PlayOptions) error {
	card := p.Hand[idx]
	switch card.Action {
	case ActionPassGo:
		card = g.spend(p, idx)
		g.DiscardPile = append(g.DiscardPile, card)
		g.draw(p, g.Rules.PassGoDraw)

	case ActionHouse, ActionHotel:
		ci, si, err := g.upgradeTarget(p, card.Action, opts.ChosenColor)
		if err != nil {
			return err
		}
		card = g.spend(p, idx)
		g.DiscardPile = append(g.DiscardPile, card)
		set := &p.Properties[ci].Sets[si]
		if card.Action == ActionHouse {
			set.Houses++
		} else {
			set.Hotels++
		}
		g.Pending = nil

	case ActionSlyDeal, ActionForcedDeal:
		if !g.anyOpponent(p.ID, (*Player).hasStealable) {
			return fmt.Errorf("play %s: %w", card.Action, ErrNoLegalTarget)
		}
		if card.Action == ActionForcedDeal && !p.hasStealable() {
			return fmt.Errorf("play %s: %w: nothing of yours can be traded", card.Action, ErrNoLegalTarget)
		}
		card = g.spend(p, idx)
		g.DiscardPile = append(g.DiscardPile, card)
		if card.Action == ActionSlyDeal {
			g.Pending = &SlyDealPending{PlayerID: p.ID}
		} else {
			g.Pending = &ForcedDealPending{PlayerID: p.ID}
		}

	case ActionDealBreaker:
		if !g.anyOpponent(p.ID, (*Player).hasCompleteSet) {
			return fmt.Errorf("play %s: %w", card.Action, ErrNoLegalTarget)
		}
		card = g.spend(p, idx)
		g.DiscardPile = append(g.DiscardPile, card)
		g.Pending = &DealBreakerPending{PlayerID: p.ID}

	case ActionDebtCollector:
		target := g.Player(opts.TargetPlayerID)
		if target == nil || target.ID == p.ID {
			return fmt.Errorf("play %s: %w: %q", card.Action, ErrInvalidTarget, opts.TargetPlayerID)
		}
		card = g.spend(p, idx)
		g.DiscardPile = append(g.DiscardPile, card)
		amount := g.Rules.DebtCollectorAmount
		if target.counterIndex() >= 0 {
			g.Pending = &JustSayNoPending{
				PlayerID:       target.ID,
				ActionType:     PendingDebtCollector,
				SourcePlayerID: p.ID,
				Amount:         amount,
			}
		} else {
			g.Pending = &DebtCollectorPending{PlayerID: p.ID, Amount: amount, TargetPlayerID: target.ID}
		}
		g.record(card.Action.String(), p.ID, target.ID, card.ID)
		g.finishAction()
		return nil

	case ActionBirthday:
		card = g.spend(p, idx)
		g.DiscardPile = append(g.DiscardPile, card)
		amount := g.Rules.BirthdayAmount
		if holder := g.counterHolder(p.ID); holder != "" {
			g.Pending = &JustSayNoPending{
				PlayerID:       holder,
				ActionType:     PendingBirthday,
				SourcePlayerID: p.ID,
				Amount:         amount,
			}
		} else {
			g.Pending = &BirthdayPending{PlayerID: p.ID, Amount: amount, RemainingPayers: g.othersOf(p.ID)}
		}

	case ActionDoubleRent:
		if g.CardsPlayedThisTurn+2 > g.Rules.MaxCardsPerTurn {
			return fmt.Errorf("play %s: %w: no play left for the rent card", card.Action, ErrBudgetExhausted)
		}
		if !p.holdsUsableRent() {
			return fmt.Errorf("play %s: %w: no usable rent card in hand", card.Action, ErrNotPlayable)
		}
		card = g.spend(p, idx)
		g.DiscardPile = append(g.DiscardPile, card)
		g.Pending = &DoubleRentPending{PlayerID: p.ID}

	default:
		return fmt.Errorf("play %s: %w", card.Action, ErrNotPlayable)
	}

	g.record(card.Action.String(), p.ID, "", card.ID)
	g.finishAction()
	return nil
}

// upgradeTarget finds the set a House or Hotel goes on: the first complete set
// of color that can take it.
func (g *GameState) upgradeTarget(p *Player, action ActionType, color Color) (int, int, error) {
	if color == ColorNone {
		return -1, -1, fmt.Errorf("play %s: %w", action, ErrColorRequired)
	}
	if !p.HasColor(color) {
		return -1, -1, fmt.Errorf("play %s: %w: %s", action, ErrColorNotOwned, color)
	}
	if !canUpgrade(color) {
		return -1, -1, fmt.Errorf("play %s: %w: %s cannot be upgraded", action, ErrUpgradeLimit, color)
	}
	ci := p.colorIndex(color)
	sawComplete := false
	for si := range p.Properties[ci].Sets {
		set := &p.Properties[ci].Sets[si]
		if !set.IsComplete(color) {
			continue
		}
		sawComplete = true
		switch {
		case action == ActionHouse && set.Houses == 0:
			return ci, si, nil
		case action == ActionHotel && set.Houses > 0 && set.Hotels == 0:
			return ci, si, nil
		}
	}
	if !sawComplete {
		return -1, -1, fmt.Errorf("play %s: %w: %s", action, ErrSetIncomplete, color)
	}
	return -1, -1, fmt.Errorf("play %s: %w: %s", action, ErrUpgradeLimit, color)
}

func (p *Player) holdsUsableRent() bool {
	for _, c := range p.Hand {
		if c.Kind == KindRent && (p.HasColor(c.RentColors[0]) || p.HasColor(c.RentColors[1])) {
			return true
		}
	}
	return false
}

// anyOpponent reports whether some player other than id satisfies pred.
func (g *GameState) anyOpponent(id PlayerID, pred func(*Player) bool) bool {
	for i := range g.Players {
		if g.Players[i].ID != id && pred(&g.Players[i]) {
			return true
		}
	}
	return false
}
