package domain

// CanBeat determines whether play beats last according to Big Two rules.
// A nil-typed last (no standing lead) is beaten by any valid combo.
//
// Single, Pair and Triple only beat the same type, compared by rank then suit.
// Five-card combos beat other five-card combos by tier first; a higher tier
// wins regardless of numeric rank, and within a tier the defining value decides.
func CanBeat(play, last Combo) bool {
	if play.Type == Invalid {
		return false
	}
	if last.Type == Invalid {
		return true
	}

	switch last.Type {
	case Single, Pair, Triple:
		return play.Type == last.Type && play.Value > last.Value
	}

	if !play.Type.IsFiveCard() || !last.Type.IsFiveCard() {
		return false
	}
	if play.Type.FiveCardTier() != last.Type.FiveCardTier() {
		return play.Type.FiveCardTier() > last.Type.FiveCardTier()
	}
	return play.Value > last.Value
}

// HighestBeatingSingle returns the strongest card in hand that beats last as a
// single, if one exists. last must be a Single.
func HighestBeatingSingle(hand []Card, last Combo) (Card, bool) {
	var best Card
	found := false
	for _, c := range hand {
		if CardPower(c) <= last.Value {
			continue
		}
		if !found || CardPower(c) > CardPower(best) {
			best = c
			found = true
		}
	}
	return best, found
}

// RequiredSingle returns the card the acting seat is forced to play under the
// one-card-left rule, if the rule is live: the seat after actingSeat holds
// exactly one card, the standing lead is a Single, and the acting hand holds at
// least one single that beats it.
func (g *Game) RequiredSingle(actingSeat int) (Card, bool) {
	if g.LastPlay == nil || g.LastPlay.Type != Single {
		return Card{}, false
	}
	next := (actingSeat + 1) % NumSeats
	if len(g.Hands[next]) != 1 {
		return Card{}, false
	}
	return HighestBeatingSingle(g.Hands[actingSeat], *g.LastPlay)
}

// ValidatePlay checks a proposed play without mutating state. Checks run in a
// fixed order and the first failure is returned: turn, ownership,
// classification, beat, opening-trick required card, one-card-left rule.
func (g *Game) ValidatePlay(seat int, cards []Card) (Combo, error) {
	if g.Phase != PhaseFirstPlay && g.Phase != PhasePlaying {
		return Combo{}, ErrMatchNotActive
	}
	if g.CurrentTurn != seat {
		return Combo{}, ErrNotYourTurn
	}
	if !ContainsCards(g.Hands[seat], cards) {
		return Combo{}, ErrCardsNotOwned
	}
	combo := Classify(cards)
	if combo.Type == Invalid {
		return Combo{}, ErrInvalidCombo
	}
	if g.LastPlay != nil && !CanBeat(combo, *g.LastPlay) {
		return Combo{}, ErrCannotBeatLastPlay
	}
	if g.Phase == PhaseFirstPlay && !ContainsCard(cards, ThreeOfDiamonds) {
		return Combo{}, ErrMissingRequiredCard
	}
	if required, ok := g.RequiredSingle(seat); ok {
		if combo.Type != Single || combo.Cards[0] != required {
			return Combo{}, oneCardLeftError(required)
		}
	}
	return combo, nil
}

// ValidatePass checks a proposed pass without mutating state. A seat holding
// the lead must play, never pass, and the one-card-left rule can forbid
// passing when a beating single is in hand.
func (g *Game) ValidatePass(seat int) error {
	if g.Phase != PhaseFirstPlay && g.Phase != PhasePlaying {
		return ErrMatchNotActive
	}
	if g.CurrentTurn != seat {
		return ErrNotYourTurn
	}
	if g.LastPlay == nil {
		return ErrCannotPassWhileLeading
	}
	if required, ok := g.RequiredSingle(seat); ok {
		return oneCardLeftError(required)
	}
	return nil
}
