package domain

import (
	"math/rand"
	"testing"
)

func TestShuffleDeckKeepsAllCards(t *testing.T) {
	deck := NewDeck()
	shuffled := ShuffleDeck(deck, rand.New(rand.NewSource(1)))

	if len(shuffled) != 52 {
		t.Fatalf("shuffled deck size = %d, want 52", len(shuffled))
	}
	seen := make(map[Card]bool, 52)
	for _, c := range shuffled {
		if seen[c] {
			t.Fatalf("card %v appears twice", c)
		}
		seen[c] = true
	}
	// The input deck is untouched.
	if deck[0] != (Card{Rank: 0, Suit: 0}) {
		t.Errorf("ShuffleDeck mutated its input, deck[0] = %v", deck[0])
	}
}

func TestDealSortsHands(t *testing.T) {
	hands := Deal(ShuffleDeck(NewDeck(), rand.New(rand.NewSource(2))))
	for seat, hand := range hands {
		if len(hand) != 13 {
			t.Fatalf("seat %d hand size = %d, want 13", seat, len(hand))
		}
		for i := 1; i < len(hand); i++ {
			if CardPower(hand[i-1]) >= CardPower(hand[i]) {
				t.Errorf("seat %d hand not sorted at %d: %v then %v", seat, i, hand[i-1], hand[i])
			}
		}
	}
}

func TestRemoveCards(t *testing.T) {
	hand := []Card{
		{Rank: 0, Suit: 0},
		{Rank: 4, Suit: 1},
		{Rank: 4, Suit: 2},
		{Rank: 9, Suit: 3},
	}

	updated := RemoveCards(hand, []Card{{Rank: 4, Suit: 1}, {Rank: 9, Suit: 3}})
	want := []Card{{Rank: 0, Suit: 0}, {Rank: 4, Suit: 2}}
	if len(updated) != len(want) {
		t.Fatalf("RemoveCards() size = %d, want %d", len(updated), len(want))
	}
	for i := range want {
		if updated[i] != want[i] {
			t.Errorf("RemoveCards()[%d] = %v, want %v", i, updated[i], want[i])
		}
	}

	// Removing an absent card leaves the hand intact.
	same := RemoveCards(hand, []Card{{Rank: 12, Suit: 3}})
	if len(same) != len(hand) {
		t.Errorf("RemoveCards() dropped %d cards for an absent target", len(hand)-len(same))
	}
}

func TestContainsCards(t *testing.T) {
	hand := []Card{{Rank: 0, Suit: 0}, {Rank: 4, Suit: 1}, {Rank: 9, Suit: 3}}

	if !ContainsCards(hand, []Card{{Rank: 4, Suit: 1}, {Rank: 0, Suit: 0}}) {
		t.Error("ContainsCards() = false for owned cards")
	}
	if ContainsCards(hand, []Card{{Rank: 4, Suit: 1}, {Rank: 4, Suit: 1}}) {
		t.Error("ContainsCards() = true for a duplicate the hand holds once")
	}
	if ContainsCards(hand, []Card{{Rank: 12, Suit: 3}}) {
		t.Error("ContainsCards() = true for an absent card")
	}
}
