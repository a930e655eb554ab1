package engine

import "testing"

// TestNewDeckComposition verifies card counts per kind and unique ids.
func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 104 {
		t.Fatalf("len(deck) = %d, want 104", len(deck))
	}

	seen := make(map[CardID]bool, len(deck))
	kinds := make(map[CardKind]int)
	counters, wilds := 0, 0
	for _, c := range deck {
		if c.ID <= 0 {
			t.Errorf("card %q has id %d", c.Name, c.ID)
		}
		if seen[c.ID] {
			t.Errorf("duplicate id %d", c.ID)
		}
		seen[c.ID] = true
		kinds[c.Kind]++
		if c.IsCounter() {
			counters++
		}
		if c.IsWildcard {
			wilds++
		}
	}

	want := map[CardKind]int{KindMoney: 20, KindProperty: 39, KindAction: 35, KindRent: 10}
	for k, n := range want {
		if kinds[k] != n {
			t.Errorf("%s cards = %d, want %d", k, kinds[k], n)
		}
	}
	if counters != 3 {
		t.Errorf("Just Say No cards = %d, want 3", counters)
	}
	if wilds != 11 {
		t.Errorf("wildcards = %d, want 11", wilds)
	}
}

// TestNamedPropertiesFillEverySet verifies each color has exactly enough named
// properties to complete one set.
func TestNamedPropertiesFillEverySet(t *testing.T) {
	counts := make(map[Color]int)
	for _, c := range NewDeck() {
		if c.Kind == KindProperty && !c.IsWildcard {
			counts[c.Color]++
		}
	}
	for _, color := range AllColors {
		if counts[color] != RequiredSetSize(color) {
			t.Errorf("%s: %d named properties, want %d", color, counts[color], RequiredSetSize(color))
		}
	}
}

func TestCardCanTakeColor(t *testing.T) {
	tests := []struct {
		name  string
		card  Card
		color Color
		want  bool
	}{
		{"plain own color", Card{Kind: KindProperty, Color: ColorRed}, ColorRed, true},
		{"plain other color", Card{Kind: KindProperty, Color: ColorRed}, ColorBlue, false},
		{"two-color wild", Card{Kind: KindProperty, IsWildcard: true, WildColors: []Color{ColorPink, ColorOrange}}, ColorOrange, true},
		{"two-color wild off color", Card{Kind: KindProperty, IsWildcard: true, WildColors: []Color{ColorPink, ColorOrange}}, ColorRed, false},
		{"any-color wild", Card{Kind: KindProperty, IsWildcard: true}, ColorUtility, true},
		{"invalid color", Card{Kind: KindProperty, IsWildcard: true}, ColorNone, false},
		{"money card", Card{Kind: KindMoney, Value: 1}, ColorBrown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.CanTakeColor(tt.color); got != tt.want {
				t.Errorf("CanTakeColor(%s) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	for _, color := range AllColors {
		got, err := ParseColor(color.String())
		if err != nil {
			t.Errorf("ParseColor(%q): %v", color.String(), err)
			continue
		}
		if got != color {
			t.Errorf("ParseColor(%q) = %s", color.String(), got)
		}
	}
	if _, err := ParseColor("Purple"); err == nil {
		t.Error("ParseColor(Purple) succeeded")
	}
}
