package domain

import (
	"errors"
	"testing"
)

func TestHandCanBeat(t *testing.T) {
	tests := []struct {
		name     string
		hand     []Card
		lead     Combo
		expected bool
	}{
		{
			name:     "HigherSingleInHand",
			hand:     []Card{{Rank: 2, Suit: 0}, {Rank: 11, Suit: 1}},
			lead:     *combo(Card{Rank: 10, Suit: 3}),
			expected: true,
		},
		{
			name:     "NothingBeatsTopSingle",
			hand:     []Card{{Rank: 12, Suit: 0}, {Rank: 12, Suit: 1}, {Rank: 12, Suit: 2}},
			lead:     *combo(Card{Rank: 12, Suit: 3}),
			expected: false,
		},
		{
			name:     "PairBeatenByHigherPairInHand",
			hand:     []Card{{Rank: 8, Suit: 0}, {Rank: 8, Suit: 2}, {Rank: 8, Suit: 3}, {Rank: 1, Suit: 0}},
			lead:     *combo(Card{Rank: 8, Suit: 0}, Card{Rank: 8, Suit: 1}),
			expected: true,
		},
		{
			name:     "PairNotBeatenBySingles",
			hand:     []Card{{Rank: 12, Suit: 3}, {Rank: 11, Suit: 3}},
			lead:     *combo(Card{Rank: 0, Suit: 0}, Card{Rank: 0, Suit: 1}),
			expected: false,
		},
		{
			name:     "TripleBeatenByHigherTriple",
			hand:     []Card{{Rank: 9, Suit: 0}, {Rank: 9, Suit: 1}, {Rank: 9, Suit: 2}, {Rank: 0, Suit: 0}},
			lead:     *combo(Card{Rank: 8, Suit: 0}, Card{Rank: 8, Suit: 1}, Card{Rank: 8, Suit: 2}),
			expected: true,
		},
		{
			name:     "StraightBeatenByFlushSubset",
			hand:     []Card{{Rank: 0, Suit: 2}, {Rank: 3, Suit: 2}, {Rank: 5, Suit: 2}, {Rank: 7, Suit: 2}, {Rank: 9, Suit: 2}, {Rank: 1, Suit: 0}},
			lead:     *combo(Card{Rank: 8, Suit: 0}, Card{Rank: 9, Suit: 1}, Card{Rank: 10, Suit: 2}, Card{Rank: 11, Suit: 3}, Card{Rank: 12, Suit: 0}),
			expected: true,
		},
		{
			name:     "FourOfAKindUntouchedByStraight",
			hand:     []Card{{Rank: 4, Suit: 0}, {Rank: 5, Suit: 1}, {Rank: 6, Suit: 2}, {Rank: 7, Suit: 3}, {Rank: 8, Suit: 0}},
			lead:     *combo(Card{Rank: 10, Suit: 0}, Card{Rank: 10, Suit: 1}, Card{Rank: 10, Suit: 2}, Card{Rank: 10, Suit: 3}, Card{Rank: 0, Suit: 0}),
			expected: false,
		},
		{
			name:     "ShortHandAgainstFiveCardLead",
			hand:     []Card{{Rank: 12, Suit: 3}, {Rank: 12, Suit: 2}},
			lead:     *combo(Card{Rank: 0, Suit: 0}, Card{Rank: 1, Suit: 1}, Card{Rank: 2, Suit: 2}, Card{Rank: 3, Suit: 3}, Card{Rank: 4, Suit: 0}),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandCanBeat(tt.hand, tt.lead); got != tt.expected {
				t.Errorf("HandCanBeat() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFullScanUnbeatable(t *testing.T) {
	topSingle := *combo(Card{Rank: 12, Suit: 3})

	t.Run("TopSingleIsUnbeatable", func(t *testing.T) {
		hands := [4][]Card{
			{{Rank: 12, Suit: 3}},
			{{Rank: 12, Suit: 0}, {Rank: 11, Suit: 1}},
			{{Rank: 10, Suit: 2}},
			{{Rank: 9, Suit: 3}, {Rank: 8, Suit: 0}},
		}
		if !FullScanUnbeatable(topSingle, hands, 0) {
			t.Error("FullScanUnbeatable() = false, want true for the 2 of spades")
		}
	})

	t.Run("ExemptSeatHandIgnored", func(t *testing.T) {
		lead := *combo(Card{Rank: 11, Suit: 3})
		hands := [4][]Card{
			{{Rank: 12, Suit: 3}}, // only the exempt seat could beat it
			{{Rank: 5, Suit: 0}},
			{{Rank: 6, Suit: 1}},
			{{Rank: 7, Suit: 2}},
		}
		if !FullScanUnbeatable(lead, hands, 0) {
			t.Error("FullScanUnbeatable() = false, want true when only the exempt seat can beat")
		}
	})

	t.Run("BeatableByAnotherSeat", func(t *testing.T) {
		lead := *combo(Card{Rank: 11, Suit: 3})
		hands := [4][]Card{
			{{Rank: 5, Suit: 0}},
			{{Rank: 12, Suit: 0}},
			{{Rank: 6, Suit: 1}},
			{{Rank: 7, Suit: 2}},
		}
		if FullScanUnbeatable(lead, hands, 0) {
			t.Error("FullScanUnbeatable() = true, want false when another seat holds a higher single")
		}
	})
}

func TestTimerViewObserve(t *testing.T) {
	timer := AutoPassTimer{
		ExemptSeat:           2,
		EndTimestamp:         100_000,
		ServerTimeAtCreation: 85_000,
		SequenceID:           1,
	}

	var view TimerView
	if err := view.Observe(timer, 40_000); err != nil {
		t.Fatalf("Observe() error = %v", err)
	}

	// Offset anchored at first observation: server 85s vs local 40s.
	if got := view.RemainingMs(timer, 40_000); got != 15_000 {
		t.Errorf("RemainingMs() = %d, want 15000", got)
	}
	if got := view.RemainingMs(timer, 49_000); got != 6_000 {
		t.Errorf("RemainingMs() = %d, want 6000", got)
	}

	t.Run("OffsetComputedOnce", func(t *testing.T) {
		// A later timer arrives while the local clock reads a jittered value;
		// the original offset keeps the countdown stable.
		next := timer
		next.SequenceID = 2
		next.EndTimestamp = 130_000
		next.ServerTimeAtCreation = 115_000
		if err := view.Observe(next, 71_500); err != nil {
			t.Fatalf("Observe() error = %v", err)
		}
		if got := view.RemainingMs(next, 70_000); got != 15_000 {
			t.Errorf("RemainingMs() = %d, want 15000 under original offset", got)
		}
	})

	t.Run("StaleSequenceRejected", func(t *testing.T) {
		stale := timer
		stale.SequenceID = 1
		if err := view.Observe(stale, 72_000); !errors.Is(err, ErrStaleTimerSequence) {
			t.Errorf("Observe() error = %v, want %v", err, ErrStaleTimerSequence)
		}
	})

	t.Run("NeverNegative", func(t *testing.T) {
		if got := view.RemainingMs(timer, 500_000); got != 0 {
			t.Errorf("RemainingMs() = %d, want 0 after expiry", got)
		}
	})
}
