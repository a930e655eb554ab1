package engine

import (
	"encoding/json"
	"fmt"
)

// PendingKind names a pending-action variant.
type PendingKind uint8

const (
	PendingNone PendingKind = iota
	PendingSlyDeal
	PendingDealBreaker
	PendingForcedDeal
	PendingDebtCollector
	PendingRent
	PendingDoubleRent
	PendingBirthday
	PendingDiscard
	PendingJustSayNo
)

var pendingNames = [...]string{
	PendingNone:          "NONE",
	PendingSlyDeal:       "SLY_DEAL",
	PendingDealBreaker:   "DEAL_BREAKER",
	PendingForcedDeal:    "FORCED_DEAL",
	PendingDebtCollector: "DEBT_COLLECTOR",
	PendingRent:          "RENT",
	PendingDoubleRent:    "DOUBLE_RENT_PENDING",
	PendingBirthday:      "BIRTHDAY",
	PendingDiscard:       "DISCARD_NEEDED",
	PendingJustSayNo:     "JUST_SAY_NO_OPPORTUNITY",
}

func (k PendingKind) String() string {
	if int(k) < len(pendingNames) {
		return pendingNames[k]
	}
	return fmt.Sprintf("PendingKind(%d)", uint8(k))
}

func (k PendingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *PendingKind) UnmarshalText(b []byte) error {
	for i, n := range pendingNames {
		if n == string(b) {
			*k = PendingKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pending kind %q", b)
}

// PendingAction is the single outstanding transaction gating normal play.
// A nil PendingAction means NONE. The set of variants is closed.
type PendingAction interface {
	Kind() PendingKind
	clonePending() PendingAction
}

// SlyDealPending waits for the actor to choose a property to steal.
type SlyDealPending struct {
	PlayerID PlayerID `json:"playerId"`
}

// DealBreakerPending waits for the actor to choose a complete set to take.
type DealBreakerPending struct {
	PlayerID PlayerID `json:"playerId"`
}

// ForcedDealPending waits for the actor to choose a one-for-one swap.
type ForcedDealPending struct {
	PlayerID PlayerID `json:"playerId"`
}

// DebtCollectorPending waits for TargetPlayerID to pay Amount to PlayerID.
type DebtCollectorPending struct {
	PlayerID       PlayerID `json:"playerId"`
	Amount         int      `json:"amount"`
	TargetPlayerID PlayerID `json:"targetPlayerId,omitempty"`
}

// RentPending waits for every remaining payer to pay Amount to PlayerID.
type RentPending struct {
	PlayerID        PlayerID   `json:"playerId"`
	Color           Color      `json:"color"`
	Amount          int        `json:"amount"`
	RemainingPayers []PlayerID `json:"remainingPayers"`
	IsDoubled       bool       `json:"isDoubled,omitempty"`
}

// DoubleRentPending waits for the actor to follow up with a rent card.
type DoubleRentPending struct {
	PlayerID PlayerID `json:"playerId"`
}

// BirthdayPending waits for every remaining payer to pay Amount to PlayerID.
type BirthdayPending struct {
	PlayerID        PlayerID   `json:"playerId"`
	Amount          int        `json:"amount"`
	RemainingPayers []PlayerID `json:"remainingPayers"`
}

// DiscardPending waits for PlayerID to discard down to the hand limit.
type DiscardPending struct {
	PlayerID PlayerID `json:"playerId"`
}

// JustSayNoPending suspends an attack until PlayerID decides whether to counter it.
// The remaining fields are the resume payload of the suspended attack.
type JustSayNoPending struct {
	PlayerID       PlayerID    `json:"playerId"`
	ActionType     PendingKind `json:"actionType"`
	SourcePlayerID PlayerID    `json:"sourcePlayerId"`
	TargetCardID   CardID      `json:"targetCardId,omitempty"`
	MyCardID       CardID      `json:"myCardId,omitempty"`
	Color          Color       `json:"color,omitempty"`
	Amount         int         `json:"amount,omitempty"`
	IsDoubled      bool        `json:"isDoubled,omitempty"`
}

func (*SlyDealPending) Kind() PendingKind       { return PendingSlyDeal }
func (*DealBreakerPending) Kind() PendingKind   { return PendingDealBreaker }
func (*ForcedDealPending) Kind() PendingKind    { return PendingForcedDeal }
func (*DebtCollectorPending) Kind() PendingKind { return PendingDebtCollector }
func (*RentPending) Kind() PendingKind          { return PendingRent }
func (*DoubleRentPending) Kind() PendingKind    { return PendingDoubleRent }
func (*BirthdayPending) Kind() PendingKind      { return PendingBirthday }
func (*DiscardPending) Kind() PendingKind       { return PendingDiscard }
func (*JustSayNoPending) Kind() PendingKind     { return PendingJustSayNo }

func (p *SlyDealPending) clonePending() PendingAction     { c := *p; return &c }
func (p *DealBreakerPending) clonePending() PendingAction { c := *p; return &c }
func (p *ForcedDealPending) clonePending() PendingAction  { c := *p; return &c }
func (p *DebtCollectorPending) clonePending() PendingAction {
	c := *p
	return &c
}
func (p *RentPending) clonePending() PendingAction {
	c := *p
	c.RemainingPayers = append([]PlayerID(nil), p.RemainingPayers...)
	return &c
}
func (p *DoubleRentPending) clonePending() PendingAction { c := *p; return &c }
func (p *BirthdayPending) clonePending() PendingAction {
	c := *p
	c.RemainingPayers = append([]PlayerID(nil), p.RemainingPayers...)
	return &c
}
func (p *DiscardPending) clonePending() PendingAction   { c := *p; return &c }
func (p *JustSayNoPending) clonePending() PendingAction { c := *p; return &c }

// KindOf returns the variant of p, PendingNone for nil.
func KindOf(p PendingAction) PendingKind {
	if p == nil {
		return PendingNone
	}
	return p.Kind()
}

// MarshalPending encodes p as a flat object carrying a "type" discriminator.
func MarshalPending(p PendingAction) ([]byte, error) {
	kind, err := KindOf(p).MarshalText()
	if err != nil {
		return nil, err
	}
	head := []byte(`{"type":"` + string(kind) + `"`)
	if p == nil {
		return append(head, '}'), nil
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	if len(body) <= 2 {
		return append(head, '}'), nil
	}
	return append(append(head, ','), body[1:]...), nil
}

// UnmarshalPending decodes the output of MarshalPending.
func UnmarshalPending(data []byte) (PendingAction, error) {
	var head struct {
		Type PendingKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var p PendingAction
	switch head.Type {
	case PendingNone:
		return nil, nil
	case PendingSlyDeal:
		p = &SlyDealPending{}
	case PendingDealBreaker:
		p = &DealBreakerPending{}
	case PendingForcedDeal:
		p = &ForcedDealPending{}
	case PendingDebtCollector:
		p = &DebtCollectorPending{}
	case PendingRent:
		p = &RentPending{}
	case PendingDoubleRent:
		p = &DoubleRentPending{}
	case PendingBirthday:
		p = &BirthdayPending{}
	case PendingDiscard:
		p = &DiscardPending{}
	case PendingJustSayNo:
		p = &JustSayNoPending{}
	default:
		return nil, fmt.Errorf("unknown pending kind %d", head.Type)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

func removePayer(payers []PlayerID, id PlayerID) ([]PlayerID, bool) {
	for i, p := range payers {
		if p == id {
			return append(payers[:i:i], payers[i+1:]...), true
		}
	}
	return payers, false
}

func containsPlayer(ids []PlayerID, id PlayerID) bool {
	for _, p := range ids {
		if p == id {
			return true
		}
	}
	return false
}
