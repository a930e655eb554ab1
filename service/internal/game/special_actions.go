// internal/game/special_actions.go
package game

import (
	"github.com/jason-s-yu/monodeal/engine"
)

// handlePropertySteal finishes a Sly Deal. Payload: targetPlayerId, targetCardId.
func (g *DealGame) handlePropertySteal(pid engine.PlayerID, payload map[string]interface{}) error {
	target, err := playerArg(payload, "targetPlayerId", true)
	if err != nil {
		return err
	}
	cardID, err := cardArg(payload, "targetCardId")
	if err != nil {
		return err
	}
	return g.Engine.ExecutePropertySteal(pid, target, cardID)
}

// handleDealBreaker finishes a Deal Breaker. Payload: targetPlayerId, color.
func (g *DealGame) handleDealBreaker(pid engine.PlayerID, payload map[string]interface{}) error {
	target, err := playerArg(payload, "targetPlayerId", true)
	if err != nil {
		return err
	}
	color, err := colorArg(payload, "color", true)
	if err != nil {
		return err
	}
	return g.Engine.ExecuteDealBreaker(pid, target, color)
}

// handleForcedDeal finishes a Forced Deal. Payload: targetPlayerId,
// targetCardId, myCardId.
func (g *DealGame) handleForcedDeal(pid engine.PlayerID, payload map[string]interface{}) error {
	target, err := playerArg(payload, "targetPlayerId", true)
	if err != nil {
		return err
	}
	theirs, err := cardArg(payload, "targetCardId")
	if err != nil {
		return err
	}
	mine, err := cardArg(payload, "myCardId")
	if err != nil {
		return err
	}
	return g.Engine.ExecuteForcedDeal(pid, target, theirs, mine)
}

// handleJustSayNoResponse answers a counter opportunity. Payload: useCounter.
func (g *DealGame) handleJustSayNoResponse(pid engine.PlayerID, payload map[string]interface{}) error {
	return g.Engine.RespondToJustSayNo(pid, boolArg(payload, "useCounter"))
}
