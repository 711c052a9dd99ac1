package bot

import (
	"testing"

	"bigtwo/internal/domain"
)

func single(c domain.Card) *domain.Combo {
	combo := domain.Classify([]domain.Card{c})
	return &combo
}

func TestGreedyLeadsWeakestSingle(t *testing.T) {
	hand := []domain.Card{
		{Rank: 9, Suit: 2},
		{Rank: 0, Suit: 0},
		{Rank: 4, Suit: 1},
	}
	state := domain.TurnState{HandSizes: [4]int{3, 13, 13, 13}}

	move := Greedy{}.ChooseMove(hand, state)
	if move.Pass {
		t.Fatal("ChooseMove() passed while leading")
	}
	if len(move.Cards) != 1 || move.Cards[0] != (domain.Card{Rank: 0, Suit: 0}) {
		t.Errorf("ChooseMove() = %v, want weakest single 3D", move.Cards)
	}
}

func TestGreedyAnswersSingleCheaply(t *testing.T) {
	hand := []domain.Card{
		{Rank: 12, Suit: 3},
		{Rank: 6, Suit: 0},
		{Rank: 8, Suit: 1},
	}
	state := domain.TurnState{
		CurrentTurn: 0,
		LastPlay:    single(domain.Card{Rank: 7, Suit: 2}),
		HandSizes:   [4]int{3, 5, 5, 5},
	}

	move := Greedy{}.ChooseMove(hand, state)
	if move.Pass {
		t.Fatal("ChooseMove() passed with beating singles in hand")
	}
	if move.Cards[0] != (domain.Card{Rank: 8, Suit: 1}) {
		t.Errorf("ChooseMove() = %v, want cheapest beating single", move.Cards)
	}
}

func TestGreedyForcedHighestWhenNextSeatNearsOut(t *testing.T) {
	hand := []domain.Card{
		{Rank: 12, Suit: 3},
		{Rank: 6, Suit: 0},
		{Rank: 8, Suit: 1},
	}
	state := domain.TurnState{
		CurrentTurn: 0,
		LastPlay:    single(domain.Card{Rank: 7, Suit: 2}),
		HandSizes:   [4]int{3, 1, 5, 5},
	}

	move := Greedy{}.ChooseMove(hand, state)
	if move.Pass {
		t.Fatal("ChooseMove() passed while a beating single is forced")
	}
	if move.Cards[0] != (domain.Card{Rank: 12, Suit: 3}) {
		t.Errorf("ChooseMove() = %v, want forced highest single 2S", move.Cards)
	}
}

func TestGreedyAnswersPair(t *testing.T) {
	hand := []domain.Card{
		{Rank: 5, Suit: 0},
		{Rank: 5, Suit: 1},
		{Rank: 10, Suit: 0},
		{Rank: 10, Suit: 2},
	}
	state := domain.TurnState{
		LastPlay:  &domain.Combo{Type: domain.Pair, Cards: []domain.Card{{Rank: 6, Suit: 0}, {Rank: 6, Suit: 1}}, Value: 6*4 + 1},
		HandSizes: [4]int{4, 5, 5, 5},
	}

	move := Greedy{}.ChooseMove(hand, state)
	if move.Pass {
		t.Fatal("ChooseMove() passed with a beating pair in hand")
	}
	combo := domain.Classify(move.Cards)
	if combo.Type != domain.Pair || move.Cards[0].Rank != 10 {
		t.Errorf("ChooseMove() = %v, want the pair of kings", move.Cards)
	}
}

func TestGreedyAnswersStraightWithCheapestFive(t *testing.T) {
	hand := []domain.Card{
		{Rank: 1, Suit: 0},
		{Rank: 2, Suit: 1},
		{Rank: 3, Suit: 2},
		{Rank: 4, Suit: 3},
		{Rank: 5, Suit: 0},
		{Rank: 12, Suit: 0},
	}
	lead := domain.Classify([]domain.Card{
		{Rank: 0, Suit: 0}, {Rank: 1, Suit: 1}, {Rank: 2, Suit: 2}, {Rank: 3, Suit: 3}, {Rank: 4, Suit: 2},
	})
	state := domain.TurnState{LastPlay: &lead, HandSizes: [4]int{6, 5, 5, 5}}

	move := Greedy{}.ChooseMove(hand, state)
	if move.Pass {
		t.Fatal("ChooseMove() passed with a higher straight in hand")
	}
	combo := domain.Classify(move.Cards)
	if combo.Type != domain.Straight || !domain.CanBeat(combo, lead) {
		t.Errorf("ChooseMove() = %v, want a beating straight", move.Cards)
	}
}

func TestGreedyPassesWhenNothingBeats(t *testing.T) {
	hand := []domain.Card{
		{Rank: 0, Suit: 0},
		{Rank: 1, Suit: 1},
	}
	state := domain.TurnState{
		LastPlay:  single(domain.Card{Rank: 12, Suit: 3}),
		HandSizes: [4]int{2, 5, 5, 5},
	}

	move := Greedy{}.ChooseMove(hand, state)
	if !move.Pass {
		t.Errorf("ChooseMove() = %v, want pass against the 2 of spades", move.Cards)
	}
}
