package domain

import (
	"math/rand"
	"sort"
)

// NewDeck returns a sorted 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for r := int32(0); r <= 12; r++ {
		for s := int32(0); s <= 3; s++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal splits a 52-card deck into four 13-card hands, each sorted by power.
func Deal(deck []Card) [4][]Card {
	var hands [4][]Card
	for seat := 0; seat < 4; seat++ {
		hands[seat] = append([]Card{}, deck[seat*13:(seat+1)*13]...)
		SortHand(hands[seat])
	}
	return hands
}

// SortHand orders a hand by ascending power.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return CardPower(cards[i]) < CardPower(cards[j])
	})
}

// RemoveCards removes the specified cards from a hand and returns the updated hand.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// ContainsCards reports whether the hand holds every named card.
// Duplicates in cards require duplicates in the hand, which a legal deck never has.
func ContainsCards(hand []Card, cards []Card) bool {
	needed := make(map[Card]int, len(cards))
	for _, c := range cards {
		needed[c]++
	}
	for _, c := range hand {
		if n, ok := needed[c]; ok && n > 0 {
			needed[c] = n - 1
		}
	}
	for _, n := range needed {
		if n > 0 {
			return false
		}
	}
	return true
}

// ContainsCard reports whether the given card is among cards.
func ContainsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}
