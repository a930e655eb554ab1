package engine

import "fmt"

type deckBuilder struct {
	cards  []Card
	nextID CardID
}

func (b *deckBuilder) add(n int, c Card) {
	for i := 0; i < n; i++ {
		b.nextID++
		card := c.clone()
		card.ID = b.nextID
		b.cards = append(b.cards, card)
	}
}

func (b *deckBuilder) money(n, value int) {
	b.add(n, Card{Kind: KindMoney, Name: fmt.Sprintf("%dM", value), Value: value})
}

func (b *deckBuilder) property(value int, color Color, names ...string) {
	for _, name := range names {
		b.add(1, Card{Kind: KindProperty, Name: name, Value: value, Color: color})
	}
}

func (b *deckBuilder) wild(n, value int, colors ...Color) {
	name := "Property Wild Card"
	if len(colors) == 2 {
		name = fmt.Sprintf("%s/%s Wild Card", colors[0], colors[1])
	}
	b.add(n, Card{Kind: KindProperty, Name: name, Value: value, IsWildcard: true, WildColors: colors})
}

func (b *deckBuilder) action(n, value int, action ActionType) {
	b.add(n, Card{Kind: KindAction, Name: action.String(), Value: value, Action: action})
}

func (b *deckBuilder) rent(n int, a, c Color) {
	b.add(n, Card{Kind: KindRent, Name: fmt.Sprintf("%s/%s Rent", a, c), Value: 1, RentColors: [2]Color{a, c}})
}

// NewDeck builds the full unshuffled deck with ids 1..N.
func NewDeck() []Card {
	var b deckBuilder

	b.money(6, 1)
	b.money(5, 2)
	b.money(3, 3)
	b.money(3, 4)
	b.money(2, 5)
	b.money(1, 10)

	b.property(1, ColorBrown, "Mediterranean Avenue", "Baltic Avenue")
	b.property(1, ColorLightBlue, "Oriental Avenue", "Vermont Avenue", "Connecticut Avenue")
	b.property(2, ColorPink, "St. Charles Place", "States Avenue", "Virginia Avenue")
	b.property(2, ColorOrange, "St. James Place", "Tennessee Avenue", "New York Avenue")
	b.property(3, ColorRed, "Kentucky Avenue", "Indiana Avenue", "Illinois Avenue")
	b.property(3, ColorYellow, "Atlantic Avenue", "Ventnor Avenue", "Marvin Gardens")
	b.property(4, ColorGreen, "Pacific Avenue", "North Carolina Avenue", "Pennsylvania Avenue")
	b.property(4, ColorBlue, "Park Place", "Boardwalk")
	b.property(2, ColorRailroad, "Reading Railroad", "Pennsylvania Railroad", "B. & O. Railroad", "Short Line")
	b.property(2, ColorUtility, "Electric Company", "Water Works")

	b.wild(1, 4, ColorBlue, ColorGreen)
	b.wild(1, 1, ColorLightBlue, ColorBrown)
	b.wild(2, 2, ColorPink, ColorOrange)
	b.wild(1, 4, ColorRailroad, ColorGreen)
	b.wild(1, 4, ColorRailroad, ColorLightBlue)
	b.wild(1, 2, ColorRailroad, ColorUtility)
	b.wild(2, 3, ColorRed, ColorYellow)
	b.wild(2, 0)

	b.action(2, 5, ActionDealBreaker)
	b.action(3, 4, ActionJustSayNo)
	b.action(3, 3, ActionSlyDeal)
	b.action(4, 3, ActionForcedDeal)
	b.action(3, 3, ActionDebtCollector)
	b.action(3, 2, ActionBirthday)
	b.action(10, 1, ActionPassGo)
	b.action(3, 3, ActionHouse)
	b.action(2, 4, ActionHotel)
	b.action(2, 1, ActionDoubleRent)

	b.rent(2, ColorGreen, ColorBlue)
	b.rent(2, ColorBrown, ColorLightBlue)
	b.rent(2, ColorPink, ColorOrange)
	b.rent(2, ColorRailroad, ColorUtility)
	b.rent(2, ColorRed, ColorYellow)

	return b.cards
}
