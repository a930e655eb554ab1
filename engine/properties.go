package engine

// PropertySet is one group of property cards of a single color plus its upgrades.
type PropertySet struct {
	Cards  []Card `json:"cards"`
	Houses int    `json:"houses"`
	Hotels int    `json:"hotels"`
}

// ColorSets holds every set a player owns of one color, in the order they were started.
type ColorSets struct {
	Color Color         `json:"color"`
	Sets  []PropertySet `json:"sets"`
}

// IsComplete reports whether the set has reached the required size for color.
func (s *PropertySet) IsComplete(color Color) bool {
	return len(s.Cards) >= requiredSetSize(color)
}

func (s *PropertySet) clone() PropertySet {
	return PropertySet{Cards: cloneCards(s.Cards), Houses: s.Houses, Hotels: s.Hotels}
}

// propertyLoc addresses a single property card inside a player's holdings.
type propertyLoc struct {
	colorIdx int
	setIdx   int
	cardIdx  int
}

// colorIndex returns the index of color in p.Properties, or -1.
func (p *Player) colorIndex(color Color) int {
	for i := range p.Properties {
		if p.Properties[i].Color == color {
			return i
		}
	}
	return -1
}

// SetsOf returns the player's sets of color. The slice aliases player state.
func (p *Player) SetsOf(color Color) []PropertySet {
	if i := p.colorIndex(color); i >= 0 {
		return p.Properties[i].Sets
	}
	return nil
}

// HasColor reports whether the player owns at least one property of color.
func (p *Player) HasColor(color Color) bool {
	for _, s := range p.SetsOf(color) {
		if len(s.Cards) > 0 {
			return true
		}
	}
	return false
}

// addProperty files card under card.Color: the first incomplete set of that
// color receives it, otherwise a new set is started.
func (p *Player) addProperty(card Card) {
	color := card.Color
	ci := p.colorIndex(color)
	if ci < 0 {
		p.Properties = append(p.Properties, ColorSets{Color: color})
		ci = len(p.Properties) - 1
	}
	entry := &p.Properties[ci]
	for si := range entry.Sets {
		if !entry.Sets[si].IsComplete(color) {
			entry.Sets[si].Cards = append(entry.Sets[si].Cards, card)
			return
		}
	}
	entry.Sets = append(entry.Sets, PropertySet{Cards: []Card{card}})
}

// addSet appends a whole set under color without merging.
func (p *Player) addSet(color Color, set PropertySet) {
	ci := p.colorIndex(color)
	if ci < 0 {
		p.Properties = append(p.Properties, ColorSets{Color: color})
		ci = len(p.Properties) - 1
	}
	p.Properties[ci].Sets = append(p.Properties[ci].Sets, set)
}

// locateProperty finds a property card by id.
func (p *Player) locateProperty(id CardID) (propertyLoc, bool) {
	for ci := range p.Properties {
		for si := range p.Properties[ci].Sets {
			for k, c := range p.Properties[ci].Sets[si].Cards {
				if c.ID == id {
					return propertyLoc{ci, si, k}, true
				}
			}
		}
	}
	return propertyLoc{}, false
}

func (p *Player) setAt(loc propertyLoc) (Color, *PropertySet) {
	entry := &p.Properties[loc.colorIdx]
	return entry.Color, &entry.Sets[loc.setIdx]
}

// removeProperty takes the card at loc out of its set. A set that falls below
// completeness loses its upgrades; empty sets and colors are dropped.
func (p *Player) removeProperty(loc propertyLoc) Card {
	color, set := p.setAt(loc)
	card := set.Cards[loc.cardIdx]
	set.Cards = append(set.Cards[:loc.cardIdx:loc.cardIdx], set.Cards[loc.cardIdx+1:]...)
	if !set.IsComplete(color) {
		set.Houses, set.Hotels = 0, 0
	}
	if len(set.Cards) == 0 {
		p.removeSet(loc.colorIdx, loc.setIdx)
	}
	return card
}

// removeSet drops a whole set, and its color entry once it has no sets left.
func (p *Player) removeSet(colorIdx, setIdx int) PropertySet {
	entry := &p.Properties[colorIdx]
	set := entry.Sets[setIdx]
	entry.Sets = append(entry.Sets[:setIdx:setIdx], entry.Sets[setIdx+1:]...)
	if len(entry.Sets) == 0 {
		p.Properties = append(p.Properties[:colorIdx:colorIdx], p.Properties[colorIdx+1:]...)
	}
	return set
}

// CompleteSets counts every complete set across all colors.
func (p *Player) CompleteSets() int {
	n := 0
	for _, entry := range p.Properties {
		for i := range entry.Sets {
			if entry.Sets[i].IsComplete(entry.Color) {
				n++
			}
		}
	}
	return n
}

// firstCompleteSet returns the index of the first complete set of color, or -1.
func (p *Player) firstCompleteSet(color Color) (colorIdx, setIdx int) {
	ci := p.colorIndex(color)
	if ci < 0 {
		return -1, -1
	}
	for si := range p.Properties[ci].Sets {
		if p.Properties[ci].Sets[si].IsComplete(color) {
			return ci, si
		}
	}
	return ci, -1
}

// Rent is what a rent card on color charges: the best set of that color, base
// rent plus upgrade surcharges.
func (p *Player) Rent(color Color, rules HouseRules) int {
	best := 0
	for _, s := range p.SetsOf(color) {
		r := baseRent(color, len(s.Cards)) + s.Houses*rules.HouseRent + s.Hotels*rules.HotelRent
		if r > best {
			best = r
		}
	}
	return best
}

// hasStealable reports whether the player owns a property outside a complete set.
func (p *Player) hasStealable() bool {
	for _, entry := range p.Properties {
		for i := range entry.Sets {
			if !entry.Sets[i].IsComplete(entry.Color) {
				return true
			}
		}
	}
	return false
}

// hasCompleteSet reports whether the player owns any complete set.
func (p *Player) hasCompleteSet() bool { return p.CompleteSets() > 0 }

// propertyCards flattens all property cards in holdings order.
func (p *Player) propertyCards() []Card {
	var out []Card
	for _, entry := range p.Properties {
		for _, s := range entry.Sets {
			out = append(out, s.Cards...)
		}
	}
	return out
}

func cloneHoldings(h []ColorSets) []ColorSets {
	if h == nil {
		return nil
	}
	out := make([]ColorSets, len(h))
	for i, entry := range h {
		out[i].Color = entry.Color
		out[i].Sets = make([]PropertySet, len(entry.Sets))
		for j := range entry.Sets {
			out[i].Sets[j] = entry.Sets[j].clone()
		}
	}
	return out
}
