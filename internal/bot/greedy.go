package bot

import "bigtwo/internal/domain"

// Greedy is the baseline strategy: lead with the weakest single, answer with
// the cheapest combination that beats the standing lead, pass otherwise.
type Greedy struct{}

// ChooseMove implements Strategy.
func (Greedy) ChooseMove(hand []domain.Card, state domain.TurnState) Move {
	if len(hand) == 0 {
		return Move{Pass: true}
	}
	sorted := append([]domain.Card{}, hand...)
	domain.SortHand(sorted)

	if state.LastPlay == nil {
		// Leading. The opening trick of match 1 must include the 3 of
		// diamonds, which is also the weakest card the leader can hold.
		return Move{Cards: []domain.Card{sorted[0]}}
	}
	last := *state.LastPlay

	// The one-card-left rule forces the highest beating single when the next
	// seat is a card away from winning.
	next := (state.CurrentTurn + 1) % domain.NumSeats
	if last.Type == domain.Single && state.HandSizes[next] == 1 {
		if required, ok := domain.HighestBeatingSingle(sorted, last); ok {
			return Move{Cards: []domain.Card{required}}
		}
		return Move{Pass: true}
	}

	switch last.Type {
	case domain.Single:
		for _, c := range sorted {
			if domain.CardPower(c) > last.Value {
				return Move{Cards: []domain.Card{c}}
			}
		}
	case domain.Pair, domain.Triple:
		if cards, ok := lowestBeatingSet(sorted, len(last.Cards), last); ok {
			return Move{Cards: cards}
		}
	default:
		if cards, ok := lowestBeatingFive(sorted, last); ok {
			return Move{Cards: cards}
		}
	}
	return Move{Pass: true}
}

// lowestBeatingSet finds the weakest same-rank set of the given size beating last.
func lowestBeatingSet(sorted []domain.Card, size int, last domain.Combo) ([]domain.Card, bool) {
	byRank := make(map[int32][]domain.Card)
	for _, c := range sorted {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	var best []domain.Card
	bestValue := int32(-1)
	for _, cards := range byRank {
		if len(cards) < size {
			continue
		}
		candidate := cards[:size]
		combo := domain.Classify(candidate)
		if combo.Type == domain.Invalid || !domain.CanBeat(combo, last) {
			continue
		}
		if bestValue < 0 || combo.Value < bestValue {
			best = candidate
			bestValue = combo.Value
		}
	}
	return best, best != nil
}

// lowestBeatingFive scans five-card subsets in ascending hand order and takes
// the first one that beats last.
func lowestBeatingFive(sorted []domain.Card, last domain.Combo) ([]domain.Card, bool) {
	n := len(sorted)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						cards := []domain.Card{sorted[a], sorted[b], sorted[c], sorted[d], sorted[e]}
						combo := domain.Classify(cards)
						if combo.Type != domain.Invalid && domain.CanBeat(combo, last) {
							return cards, true
						}
					}
				}
			}
		}
	}
	return nil, false
}
