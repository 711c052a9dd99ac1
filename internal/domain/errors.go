package domain

import (
	"errors"
	"fmt"
)

// Validation failures are returned as typed sentinels so callers can render
// precise feedback naming the exact violated rule.
var (
	ErrNotYourTurn            = errors.New("not your turn")
	ErrCardsNotOwned          = errors.New("cards not owned by seat")
	ErrInvalidCombo           = errors.New("cards do not form a valid combination")
	ErrCannotBeatLastPlay     = errors.New("combination cannot beat the last play")
	ErrMissingRequiredCard    = errors.New("opening play must include the 3 of diamonds")
	ErrOneCardLeftViolation   = errors.New("next seat has one card left")
	ErrCannotPassWhileLeading = errors.New("cannot pass while holding the lead")
	ErrMatchNotActive         = errors.New("match is not active")
)

// oneCardLeftError wraps ErrOneCardLeftViolation with the single the acting
// seat is required to play.
func oneCardLeftError(required Card) error {
	return fmt.Errorf("%w: must play %s", ErrOneCardLeftViolation, required)
}

// ErrorKind is a stable machine-readable tag for a validation failure, for
// transports that serialize errors to clients.
type ErrorKind string

const (
	KindNotYourTurn            ErrorKind = "not_your_turn"
	KindCardsNotOwned          ErrorKind = "cards_not_owned"
	KindInvalidCombo           ErrorKind = "invalid_combo"
	KindCannotBeatLastPlay     ErrorKind = "cannot_beat_last_play"
	KindMissingRequiredCard    ErrorKind = "missing_required_card"
	KindOneCardLeftViolation   ErrorKind = "one_card_left_violation"
	KindCannotPassWhileLeading ErrorKind = "cannot_pass_while_leading"
	KindMatchNotActive         ErrorKind = "match_not_active"
	KindUnknown                ErrorKind = "unknown"
)

var kindsBySentinel = []struct {
	err  error
	kind ErrorKind
}{
	{ErrNotYourTurn, KindNotYourTurn},
	{ErrCardsNotOwned, KindCardsNotOwned},
	{ErrInvalidCombo, KindInvalidCombo},
	{ErrCannotBeatLastPlay, KindCannotBeatLastPlay},
	{ErrMissingRequiredCard, KindMissingRequiredCard},
	{ErrOneCardLeftViolation, KindOneCardLeftViolation},
	{ErrCannotPassWhileLeading, KindCannotPassWhileLeading},
	{ErrMatchNotActive, KindMatchNotActive},
}

// KindOf maps an error to its rule kind, unwrapping as needed.
func KindOf(err error) ErrorKind {
	for _, entry := range kindsBySentinel {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return KindUnknown
}
