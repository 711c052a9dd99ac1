package domain

// ComboType represents the type of card combination.
type ComboType int

const (
	Invalid ComboType = iota
	Single
	Pair
	Triple
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var comboTypeNames = map[ComboType]string{
	Invalid:       "invalid",
	Single:        "single",
	Pair:          "pair",
	Triple:        "triple",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full_house",
	FourOfAKind:   "four_of_a_kind",
	StraightFlush: "straight_flush",
}

func (t ComboType) String() string {
	if name, ok := comboTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsFiveCard reports whether the combo type is one of the five-card hands.
func (t ComboType) IsFiveCard() bool {
	return t >= Straight && t <= StraightFlush
}

// FiveCardTier returns the precedence of a five-card combo type.
// Straight < Flush < FullHouse < FourOfAKind < StraightFlush.
func (t ComboType) FiveCardTier() int {
	return int(t - Straight)
}

// Combo represents a classified, comparable combination of cards.
type Combo struct {
	Type  ComboType `json:"type"`
	Cards []Card    `json:"cards"` // sorted by power
	Value int32     `json:"value"` // power of the comparison card
}

// Classify analyzes a set of cards and returns the combination they form.
// Only sizes 1, 2, 3 and 5 can produce a valid combo; every other size is Invalid.
func Classify(cards []Card) Combo {
	sorted := append([]Card{}, cards...)
	SortHand(sorted)

	switch len(sorted) {
	case 1:
		return Combo{Type: Single, Cards: sorted, Value: CardPower(sorted[0])}
	case 2:
		if allSameRank(sorted) {
			return Combo{Type: Pair, Cards: sorted, Value: CardPower(sorted[1])}
		}
	case 3:
		if allSameRank(sorted) {
			return Combo{Type: Triple, Cards: sorted, Value: CardPower(sorted[2])}
		}
	case 5:
		return classifyFive(sorted)
	}
	return Combo{Type: Invalid}
}

// classifyFive assumes cards are sorted by power and len(cards) == 5.
func classifyFive(cards []Card) Combo {
	if quadRank, ok := fourOfAKindRank(cards); ok {
		return Combo{Type: FourOfAKind, Cards: cards, Value: highestPowerOfRank(cards, quadRank)}
	}
	if tripleRank, ok := fullHouseTripleRank(cards); ok {
		return Combo{Type: FullHouse, Cards: cards, Value: highestPowerOfRank(cards, tripleRank)}
	}

	straight := isConsecutiveRanks(cards)
	flush := allSameSuit(cards)
	top := CardPower(cards[4])

	switch {
	case straight && flush:
		return Combo{Type: StraightFlush, Cards: cards, Value: top}
	case flush:
		return Combo{Type: Flush, Cards: cards, Value: top}
	case straight:
		return Combo{Type: Straight, Cards: cards, Value: top}
	}
	return Combo{Type: Invalid}
}

func allSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

func allSameSuit(cards []Card) bool {
	s := cards[0].Suit
	for _, c := range cards {
		if c.Suit != s {
			return false
		}
	}
	return true
}

// isConsecutiveRanks reports whether sorted cards form 5 strictly consecutive
// ranks in the 3..2 order. There is no wraparound: A-2-3-4-5 is not a straight,
// while J-Q-K-A-2 is, since those ranks are adjacent in the game order.
func isConsecutiveRanks(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank != cards[i-1].Rank+1 {
			return false
		}
	}
	return true
}

// fourOfAKindRank returns the rank appearing four times, if any.
// Cards are sorted, so a quad occupies either the first or last four slots.
func fourOfAKindRank(cards []Card) (int32, bool) {
	if cards[0].Rank == cards[3].Rank {
		return cards[0].Rank, true
	}
	if cards[1].Rank == cards[4].Rank {
		return cards[1].Rank, true
	}
	return 0, false
}

// fullHouseTripleRank returns the rank of the triple in a 3+2 split, if any.
func fullHouseTripleRank(cards []Card) (int32, bool) {
	// Sorted cards: triple is the low or high run.
	if cards[0].Rank == cards[2].Rank && cards[3].Rank == cards[4].Rank {
		return cards[0].Rank, true
	}
	if cards[0].Rank == cards[1].Rank && cards[2].Rank == cards[4].Rank {
		return cards[2].Rank, true
	}
	return 0, false
}

func highestPowerOfRank(cards []Card, rank int32) int32 {
	best := int32(-1)
	for _, c := range cards {
		if c.Rank != rank {
			continue
		}
		if p := CardPower(c); p > best {
			best = p
		}
	}
	return best
}
