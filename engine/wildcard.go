package engine

import "fmt"

// ReassignWildcard moves one of the current player's wildcards to another of
// its colors. Allowed once per turn, outside any pending action, and never out
// of a set carrying houses or hotels.
func (g *GameState) ReassignWildcard(playerID PlayerID, cardID CardID, newColor Color) error {
	if err := g.requireTurn(playerID); err != nil {
		return err
	}
	if g.Pending != nil {
		return fmt.Errorf("reassign: %w (%s)", ErrPendingAction, g.Pending.Kind())
	}
	if g.WildCardReassignedThisTurn {
		return ErrAlreadyReassigned
	}
	p := g.CurrentPlayer()
	loc, ok := p.locateProperty(cardID)
	if !ok {
		return fmt.Errorf("reassign: %w: %d", ErrCardNotFound, cardID)
	}
	color, set := p.setAt(loc)
	card := set.Cards[loc.cardIdx]
	if !card.IsWildcard {
		return fmt.Errorf("reassign: %w: %d", ErrNotWildcard, cardID)
	}
	if !newColor.Valid() || newColor == color || !card.CanTakeColor(newColor) {
		return fmt.Errorf("reassign: %w: %s", ErrInvalidColor, newColor)
	}
	if set.Houses > 0 || set.Hotels > 0 {
		return fmt.Errorf("reassign: %w: %s set carries upgrades", ErrUpgradeLimit, color)
	}

	card = p.removeProperty(loc)
	card.Color = newColor
	p.addProperty(card)
	g.WildCardReassignedThisTurn = true
	g.record("", playerID, "", cardID)
	return nil
}
