package domain

import "errors"

// AutoPassTimer anchors a single authoritative expiry for a standing play
// judged effectively unbeatable. Timers are immutable; a room replaces the
// whole value on every transition instead of mutating it in place.
type AutoPassTimer struct {
	ExemptSeat           int    `json:"exempt_seat"`
	EndTimestamp         int64  `json:"end_timestamp"`            // ms, authoritative clock
	ServerTimeAtCreation int64  `json:"server_time_at_creation"`  // ms, authoritative clock
	SequenceID           uint64 `json:"sequence_id"`
	TriggeringCombo      Combo  `json:"triggering_combo"`
}

// UnbeatableDetector judges whether a standing lead has any legal response
// left. hands are all four hands; exemptSeat is the seat that made the play.
// The exact heuristic is deliberately pluggable.
type UnbeatableDetector func(lead Combo, hands [4][]Card, exemptSeat int) bool

// FullScanUnbeatable is the default detector: a full-information scan of the
// three non-exempt hands for any combination that beats the lead. The engine
// is server-authoritative and holds every hand, so the scan is exact rather
// than a public-history approximation.
func FullScanUnbeatable(lead Combo, hands [4][]Card, exemptSeat int) bool {
	for seat := 0; seat < NumSeats; seat++ {
		if seat == exemptSeat {
			continue
		}
		if HandCanBeat(hands[seat], lead) {
			return false
		}
	}
	return true
}

// HandCanBeat reports whether any subset of hand beats the lead. Only subsets
// of the lead's own size can beat it for Single/Pair/Triple; for a five-card
// lead every five-card subset is tried, which also covers higher tiers.
func HandCanBeat(hand []Card, lead Combo) bool {
	n := len(hand)
	switch lead.Type {
	case Single:
		for _, c := range hand {
			if CardPower(c) > lead.Value {
				return true
			}
		}
	case Pair, Triple:
		size := len(lead.Cards)
		return anySameRankSetBeats(hand, size, lead)
	case Straight, Flush, FullHouse, FourOfAKind, StraightFlush:
		for a := 0; a < n-4; a++ {
			for b := a + 1; b < n-3; b++ {
				for c := b + 1; c < n-2; c++ {
					for d := c + 1; d < n-1; d++ {
						for e := d + 1; e < n; e++ {
							combo := Classify([]Card{hand[a], hand[b], hand[c], hand[d], hand[e]})
							if combo.Type != Invalid && CanBeat(combo, lead) {
								return true
							}
						}
					}
				}
			}
		}
	}
	return false
}

// anySameRankSetBeats looks for a same-rank set of the given size beating the lead.
func anySameRankSetBeats(hand []Card, size int, lead Combo) bool {
	byRank := make(map[int32][]Card)
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	for _, cards := range byRank {
		if len(cards) < size {
			continue
		}
		SortHand(cards)
		// Strongest same-rank set of this size: the top cards by suit.
		combo := Classify(cards[len(cards)-size:])
		if combo.Type != Invalid && CanBeat(combo, lead) {
			return true
		}
	}
	return false
}

// ErrStaleTimerSequence marks a timer notification older than one already
// observed; the observer silently discards it.
var ErrStaleTimerSequence = errors.New("stale timer sequence")

// TimerView derives countdown remaining time for one observer under a skewed
// local clock. The clock offset is computed exactly once, on the first timer
// received, and reused on every redraw; recomputing per tick would oscillate
// under network jitter.
type TimerView struct {
	offset   int64
	synced   bool
	lastSeen uint64
}

// Observe records a timer notification. The first observation anchors the
// local clock offset against the authoritative clock. Notifications whose
// sequence is not strictly newer than the last seen are rejected as stale.
func (v *TimerView) Observe(t AutoPassTimer, localNowMs int64) error {
	if t.SequenceID <= v.lastSeen {
		return ErrStaleTimerSequence
	}
	v.lastSeen = t.SequenceID
	if !v.synced {
		v.offset = t.ServerTimeAtCreation - localNowMs
		v.synced = true
	}
	return nil
}

// RemainingMs translates a local clock reading into authoritative remaining
// milliseconds before expiry. Never negative.
func (v *TimerView) RemainingMs(t AutoPassTimer, localNowMs int64) int64 {
	remaining := t.EndTimestamp - (localNowMs + v.offset)
	if remaining < 0 {
		return 0
	}
	return remaining
}
