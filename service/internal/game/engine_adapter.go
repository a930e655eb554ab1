// internal/game/engine_adapter.go
package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monodeal/engine"
	"github.com/jason-s-yu/monodeal/service/internal/models"
	log "github.com/sirupsen/logrus"
)

// Room-level failures. Rule violations come from the engine package.
var (
	ErrGameInProgress = errors.New("game already in progress")
	ErrGameNotRunning = errors.New("no game in progress")
	ErrNotSeated      = errors.New("player is not seated in this room")
	ErrUnknownAction  = errors.New("unknown action type")
	ErrBadPayload     = errors.New("malformed action payload")
)

// Action types accepted by HandlePlayerAction.
const (
	ActionPlayCard          = "play_card"
	ActionReassignWildcard  = "reassign_wildcard"
	ActionPropertySteal     = "property_steal"
	ActionDealBreaker       = "deal_breaker"
	ActionForcedDeal        = "forced_deal"
	ActionPayDebt           = "pay_debt"
	ActionPayRent           = "pay_rent"
	ActionPayBirthday       = "pay_birthday"
	ActionJustSayNoResponse = "just_say_no_response"
	ActionDiscardCards      = "discard_cards"
	ActionEndTurn           = "end_turn"
)

// HandlePlayerAction validates and applies one client action. On success the
// new state is pushed to every player, the action is logged and the result
// names any notification to show. On failure nothing changes and only the
// acting player hears about it.
// Assumes lock is held by the caller.
func (g *DealGame) HandlePlayerAction(playerID uuid.UUID, action models.GameAction) models.ActionResult {
	prevTurn := -1
	if g.Engine != nil {
		prevTurn = g.Engine.CurrentPlayerIndex
	}
	if err := g.applyAction(playerID, action); err != nil {
		log.WithFields(log.Fields{"game": g.ID, "player": playerID, "action": action.ActionType}).
			Debugf("action rejected: %v", err)
		g.fireEventToPlayer(playerID, GameEvent{
			Type:    EventPrivateError,
			Payload: map[string]interface{}{"action": action.ActionType, "message": err.Error()},
		})
		return models.ActionResult{Success: false, Error: err.Error()}
	}
	return g.afterAction(playerID, action, prevTurn)
}

// applyAction routes action to the engine. The engine validates fully before
// mutating, so an error here leaves the state untouched.
func (g *DealGame) applyAction(playerID uuid.UUID, action models.GameAction) error {
	if g.Engine == nil || !g.Started {
		return ErrGameNotRunning
	}
	if g.GameOver {
		return engine.ErrGameOver
	}
	if g.getPlayerByID(playerID) == nil {
		return ErrNotSeated
	}
	pid := enginePlayerID(playerID)
	payload := action.Payload

	switch action.ActionType {
	case ActionPlayCard:
		return g.handlePlayCard(pid, payload)
	case ActionReassignWildcard:
		cardID, err := cardArg(payload, "cardId")
		if err != nil {
			return err
		}
		color, err := colorArg(payload, "color", true)
		if err != nil {
			return err
		}
		return g.Engine.ReassignWildcard(pid, cardID, color)
	case ActionPropertySteal:
		return g.handlePropertySteal(pid, payload)
	case ActionDealBreaker:
		return g.handleDealBreaker(pid, payload)
	case ActionForcedDeal:
		return g.handleForcedDeal(pid, payload)
	case ActionPayDebt, ActionPayRent, ActionPayBirthday:
		return g.handlePayment(pid, action.ActionType, payload)
	case ActionJustSayNoResponse:
		return g.handleJustSayNoResponse(pid, payload)
	case ActionDiscardCards:
		cardIDs, err := cardListArg(payload, "cardIds")
		if err != nil {
			return err
		}
		return g.Engine.DiscardCards(pid, cardIDs)
	case ActionEndTurn:
		return g.Engine.EndTurn(pid)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action.ActionType)
	}
}

// handlePlayCard plays a card from hand. Payload: cardId, and optionally
// chosenColor, playAsAction, targetPlayerId.
func (g *DealGame) handlePlayCard(pid engine.PlayerID, payload map[string]interface{}) error {
	cardID, err := cardArg(payload, "cardId")
	if err != nil {
		return err
	}
	color, err := colorArg(payload, "chosenColor", false)
	if err != nil {
		return err
	}
	target, err := playerArg(payload, "targetPlayerId", false)
	if err != nil {
		return err
	}
	return g.Engine.PlayCard(pid, cardID, engine.PlayOptions{
		ChosenColor:    color,
		PlayAsAction:   boolArg(payload, "playAsAction"),
		TargetPlayerID: target,
	})
}

// handlePayment settles the caller's share of a debt, rent or birthday. Payload:
// cardIds, and bankrupt to hand over everything eligible.
func (g *DealGame) handlePayment(pid engine.PlayerID, actionType string, payload map[string]interface{}) error {
	cardIDs, err := cardListArg(payload, "cardIds")
	if err != nil {
		return err
	}
	bankrupt := boolArg(payload, "bankrupt")
	switch actionType {
	case ActionPayDebt:
		return g.Engine.CollectDebt(pid, cardIDs, bankrupt)
	case ActionPayRent:
		return g.Engine.CollectRent(pid, cardIDs, bankrupt)
	default:
		return g.Engine.CollectBirthdayPayment(pid, cardIDs, bankrupt)
	}
}

// afterAction publishes the outcome of a successful action.
// Assumes lock is held by caller.
func (g *DealGame) afterAction(playerID uuid.UUID, action models.GameAction, prevTurn int) models.ActionResult {
	last := g.Engine.LastAction
	result := models.ActionResult{Success: true, NotificationType: last.Notice}
	if actor := g.Engine.Player(last.PlayerID); actor != nil {
		result.Player = actor.Name
	}

	g.logAction(playerID, action.ActionType, action.Payload)
	g.broadcastSyncStateToAll()

	if last.Notice != "" {
		ev := GameEvent{
			Type:         EventNotification,
			Notification: last.Notice,
			User:         g.eventUser(last.PlayerID),
			Target:       g.eventUser(last.TargetPlayerID),
		}
		if last.CardID != 0 {
			ev.Payload = map[string]interface{}{"cardId": int(last.CardID)}
		}
		g.fireEvent(ev)
	}

	if g.Engine.IsGameOver() {
		g.EndGame()
		return result
	}
	if g.Engine.CurrentPlayerIndex != prevTurn {
		g.broadcastPlayerTurn()
	}
	g.storeSnapshot()
	return result
}

// broadcastPlayerTurn notifies all players of the current player's turn.
// Assumes lock is held by caller.
func (g *DealGame) broadcastPlayerTurn() {
	cur := g.Engine.CurrentPlayer()
	g.fireEvent(GameEvent{Type: EventGamePlayerTurn, User: g.eventUser(cur.ID)})
}

func (g *DealGame) eventUser(id engine.PlayerID) *EventUser {
	if id == "" {
		return nil
	}
	u := &EventUser{ID: playerUUID(id)}
	if p := g.Engine.Player(id); p != nil {
		u.Username = p.Name
	}
	return u
}

// cardArg reads a card id. JSON numbers arrive as float64.
func cardArg(payload map[string]interface{}, key string) (engine.CardID, error) {
	raw, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrBadPayload, key)
	}
	id, ok := toCardID(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a card id", ErrBadPayload, key)
	}
	return id, nil
}

// cardListArg reads a list of card ids. A missing key is an empty list.
func cardListArg(payload map[string]interface{}, key string) ([]engine.CardID, error) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list of card ids", ErrBadPayload, key)
	}
	out := make([]engine.CardID, 0, len(list))
	for _, v := range list {
		id, ok := toCardID(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a list of card ids", ErrBadPayload, key)
		}
		out = append(out, id)
	}
	return out, nil
}

func toCardID(v interface{}) (engine.CardID, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return engine.CardID(f), true
}

// colorArg reads a color name. When not required a missing key is ColorNone.
func colorArg(payload map[string]interface{}, key string, required bool) (engine.Color, error) {
	raw, ok := payload[key]
	if !ok || raw == nil || raw == "" {
		if required {
			return engine.ColorNone, fmt.Errorf("%w: missing %s", ErrBadPayload, key)
		}
		return engine.ColorNone, nil
	}
	s, ok := raw.(string)
	if !ok {
		return engine.ColorNone, fmt.Errorf("%w: %s must be a color name", ErrBadPayload, key)
	}
	c, err := engine.ParseColor(s)
	if err != nil {
		return engine.ColorNone, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return c, nil
}

// playerArg reads a player uuid. When not required a missing key is "".
func playerArg(payload map[string]interface{}, key string, required bool) (engine.PlayerID, error) {
	raw, _ := payload[key].(string)
	if raw == "" {
		if required {
			return "", fmt.Errorf("%w: missing %s", ErrBadPayload, key)
		}
		return "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s must be a player id", ErrBadPayload, key)
	}
	return enginePlayerID(id), nil
}

func boolArg(payload map[string]interface{}, key string) bool {
	b, _ := payload[key].(bool)
	return b
}
