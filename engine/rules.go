package engine

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	MinPlayers          int
	MaxPlayers          int
	InitialHandSize     int // cards dealt to each player at game start
	DrawPerTurn         int // cards drawn at turn start
	EmptyHandDraw       int // cards drawn at turn start when the hand is empty
	PassGoDraw          int
	MaxCardsPerTurn     int
	HandLimit           int // hand size allowed at end of turn
	SetsToWin           int
	DebtCollectorAmount int
	BirthdayAmount      int // owed by each other player
	HouseRent           int // rent surcharge per house
	HotelRent           int // rent surcharge per hotel
}

// DefaultHouseRules returns the standard rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		MinPlayers:          2,
		MaxPlayers:          5,
		InitialHandSize:     5,
		DrawPerTurn:         2,
		EmptyHandDraw:       5,
		PassGoDraw:          2,
		MaxCardsPerTurn:     3,
		HandLimit:           7,
		SetsToWin:           3,
		DebtCollectorAmount: 5,
		BirthdayAmount:      2,
		HouseRent:           3,
		HotelRent:           4,
	}
}

// requiredSetSize is the number of cards that completes a set of color.
func requiredSetSize(color Color) int {
	switch color {
	case ColorBrown, ColorBlue, ColorUtility:
		return 2
	case ColorRailroad:
		return 4
	default:
		return 3
	}
}

// RequiredSetSize is exported for clients that render set progress.
func RequiredSetSize(color Color) int { return requiredSetSize(color) }

var rentTable = map[Color][]int{
	ColorBrown:     {1, 2},
	ColorLightBlue: {1, 2, 3},
	ColorPink:      {1, 2, 4},
	ColorOrange:    {1, 3, 5},
	ColorRed:       {2, 3, 6},
	ColorYellow:    {2, 4, 6},
	ColorGreen:     {2, 4, 7},
	ColorBlue:      {3, 8},
	ColorRailroad:  {1, 2, 3, 4},
	ColorUtility:   {1, 2},
}

// baseRent looks up the rent for count cards of color. Counts beyond the set
// size are capped; zero cards charge nothing.
func baseRent(color Color, count int) int {
	table, ok := rentTable[color]
	if !ok || count <= 0 {
		return 0
	}
	if count > len(table) {
		count = len(table)
	}
	return table[count-1]
}

// canUpgrade reports whether houses and hotels may ever be placed on color.
func canUpgrade(color Color) bool {
	return color != ColorRailroad && color != ColorUtility
}
