// Package bot defines the contract an automated player consumes. The engine
// never depends on a particular policy; strategies plug in from outside and
// build only on the public snapshot and the validator primitives.
package bot

import "bigtwo/internal/domain"

// Move represents the decision made by a strategy.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Strategy is the interface all bot policies implement. ChooseMove is called
// when it is the strategy's seat's turn; hand is that seat's current hand and
// state is the public turn snapshot.
type Strategy interface {
	ChooseMove(hand []domain.Card, state domain.TurnState) Move
}
