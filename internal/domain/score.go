package domain

// DefaultGameOverThreshold ends the game once any seat's total reaches it.
const DefaultGameOverThreshold = 101

// MatchScore is the per-seat point delta for one match.
type MatchScore [4]int

// GameTotals is the cumulative per-seat point sums across matches.
type GameTotals [4]int

// ComputeMatchScore converts ending hand sizes into point deltas. The winner
// (0 cards) scores 0; everyone else scores remaining cards times a tier
// multiplier: x1 for 1-4 cards, x2 for 5-9, x3 for 10-13.
func ComputeMatchScore(handSizes [4]int) MatchScore {
	var score MatchScore
	for seat, n := range handSizes {
		score[seat] = n * scoreMultiplier(n)
	}
	return score
}

func scoreMultiplier(remaining int) int {
	switch {
	case remaining == 0:
		return 0
	case remaining <= 4:
		return 1
	case remaining <= 9:
		return 2
	default:
		return 3
	}
}

// Add accumulates a match's deltas into the totals.
func (t *GameTotals) Add(s MatchScore) {
	for seat := range t {
		t[seat] += s[seat]
	}
}

// IsGameOver reports whether any seat's cumulative total has reached the threshold.
func IsGameOver(t GameTotals, threshold int) bool {
	for _, total := range t {
		if total >= threshold {
			return true
		}
	}
	return false
}

// FindFinalWinner returns the seat with the lowest cumulative total. Ties go
// to the lowest seat index.
func FindFinalWinner(t GameTotals) int {
	winner := 0
	for seat := 1; seat < NumSeats; seat++ {
		if t[seat] < t[winner] {
			winner = seat
		}
	}
	return winner
}
