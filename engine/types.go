package engine

import "fmt"

// PlayerID identifies a seated player. It is supplied by the transport layer.
type PlayerID string

// CardID is unique and stable for the lifetime of a card.
type CardID int

// Color is a property color group.
type Color uint8

const (
	ColorNone Color = iota
	ColorBrown
	ColorLightBlue
	ColorPink
	ColorOrange
	ColorRed
	ColorYellow
	ColorGreen
	ColorBlue
	ColorRailroad
	ColorUtility
)

// AllColors lists every property color in table order.
var AllColors = [...]Color{
	ColorBrown, ColorLightBlue, ColorPink, ColorOrange, ColorRed,
	ColorYellow, ColorGreen, ColorBlue, ColorRailroad, ColorUtility,
}

var colorNames = [...]string{
	ColorNone:      "",
	ColorBrown:     "Brown",
	ColorLightBlue: "LightBlue",
	ColorPink:      "Pink",
	ColorOrange:    "Orange",
	ColorRed:       "Red",
	ColorYellow:    "Yellow",
	ColorGreen:     "Green",
	ColorBlue:      "Blue",
	ColorRailroad:  "Railroad",
	ColorUtility:   "Utility",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c names a real property color.
func (c Color) Valid() bool { return c > ColorNone && c <= ColorUtility }

// ParseColor maps a color name to its Color.
func ParseColor(s string) (Color, error) {
	for _, c := range AllColors {
		if colorNames[c] == s {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = ColorNone
		return nil
	}
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CardKind tags the four card variants.
type CardKind uint8

const (
	KindMoney CardKind = iota
	KindProperty
	KindAction
	KindRent
)

var kindNames = [...]string{"money", "property", "action", "rent"}

func (k CardKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("CardKind(%d)", uint8(k))
}

func (k CardKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *CardKind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = CardKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown card kind %q", b)
}

// ActionType is the named effect of an action card.
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionPassGo
	ActionSlyDeal
	ActionDealBreaker
	ActionForcedDeal
	ActionDebtCollector
	ActionBirthday
	ActionJustSayNo
	ActionHouse
	ActionHotel
	ActionDoubleRent
)

var actionNames = [...]string{
	ActionNone:          "",
	ActionPassGo:        "Pass Go",
	ActionSlyDeal:       "Sly Deal",
	ActionDealBreaker:   "Deal Breaker",
	ActionForcedDeal:    "Forced Deal",
	ActionDebtCollector: "Debt Collector",
	ActionBirthday:      "It's My Birthday",
	ActionJustSayNo:     "Just Say No",
	ActionHouse:         "House",
	ActionHotel:         "Hotel",
	ActionDoubleRent:    "Double The Rent",
}

func (a ActionType) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("ActionType(%d)", uint8(a))
}

func (a ActionType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ActionType) UnmarshalText(b []byte) error {
	for i, n := range actionNames {
		if n == string(b) {
			*a = ActionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", b)
}

// Card is one physical card. Kind selects which of the variant fields apply:
//   - KindMoney: Name, Value
//   - KindProperty: Color (the assigned color for a played wildcard), IsWildcard, WildColors
//   - KindAction: Action
//   - KindRent: RentColors
type Card struct {
	ID    CardID   `json:"id"`
	Kind  CardKind `json:"kind"`
	Name  string   `json:"name"`
	Value int      `json:"value"`

	Color      Color   `json:"color,omitempty"`
	IsWildcard bool    `json:"isWildcard,omitempty"`
	WildColors []Color `json:"wildColors,omitempty"` // empty = any color

	Action     ActionType `json:"action,omitempty"`
	RentColors [2]Color   `json:"rentColors,omitempty"`
}

// IsCounter reports whether the card is a Just Say No.
func (c Card) IsCounter() bool { return c.Kind == KindAction && c.Action == ActionJustSayNo }

// CanBeMoney reports whether the card may be placed in a money pile.
// Property cards never can.
func (c Card) CanBeMoney() bool { return c.Kind != KindProperty }

// CanTakeColor reports whether a property card may be filed under color.
func (c Card) CanTakeColor(color Color) bool {
	if c.Kind != KindProperty || !color.Valid() {
		return false
	}
	if !c.IsWildcard {
		return c.Color == color
	}
	if len(c.WildColors) == 0 {
		return true
	}
	for _, wc := range c.WildColors {
		if wc == color {
			return true
		}
	}
	return false
}

// ChargesRentOn reports whether a rent card may be played against color.
func (c Card) ChargesRentOn(color Color) bool {
	return c.Kind == KindRent && color.Valid() && (c.RentColors[0] == color || c.RentColors[1] == color)
}

func (c Card) clone() Card {
	if c.WildColors != nil {
		c.WildColors = append([]Color(nil), c.WildColors...)
	}
	return c
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.clone()
	}
	return out
}

// TotalValue sums the money value of cards.
func TotalValue(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value
	}
	return total
}
