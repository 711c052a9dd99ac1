package engine

import (
	"sync"

	"github.com/sirupsen/logrus"

	"bigtwo/internal/domain"
)

// RoomState is the full observable snapshot of one room: the turn machine
// state plus the active auto-pass timer, if any. Observers re-derive timer
// visibility from this snapshot, never from notification delivery.
type RoomState struct {
	Turn  domain.TurnState      `json:"turn"`
	Timer *domain.AutoPassTimer `json:"timer,omitempty"`
}

// Room is the authoritative mutator for one table. All state transitions are
// serialized through its exclusive lock; a caller that cannot immediately
// acquire it fails fast with ErrRoomLockConflict and retries against fresh
// state instead of queueing.
type Room struct {
	ID string

	mu       sync.Mutex
	game     *domain.Game
	timer    *domain.AutoPassTimer
	timerSeq uint64
	stop     func() bool // best-effort cancel for the scheduled expiry

	svc *Service
}

// Play validates and applies a play for the given seat.
func (r *Room) Play(seat int, cards []domain.Card) (RoomState, error) {
	if !r.mu.TryLock() {
		return RoomState{}, ErrRoomLockConflict
	}
	defer r.mu.Unlock()

	combo := domain.Classify(cards)
	if err := r.game.ApplyPlay(seat, cards); err != nil {
		return r.stateLocked(), err
	}
	r.clearTimerLocked()
	r.publishLocked(EventCardPlayed, CardPlayedPayload{Seat: seat, Cards: cards, Combo: combo})

	if r.game.Phase == domain.PhaseFinished {
		r.advanceMatchLocked()
	}
	r.armTimerLocked()
	return r.stateLocked(), nil
}

// Pass validates and applies a pass for the given seat. A pass by a non-exempt
// seat clears any active timer as a side effect; if the same lead still stands
// and is still judged unbeatable, a fresh timer is anchored with a new
// sequence id so remaining seats are still auto-passed at expiry.
func (r *Room) Pass(seat int) (RoomState, error) {
	if !r.mu.TryLock() {
		return RoomState{}, ErrRoomLockConflict
	}
	defer r.mu.Unlock()

	if err := r.game.ApplyPass(seat); err != nil {
		return r.stateLocked(), err
	}
	r.clearTimerLocked()
	r.publishLocked(EventTurnPassed, TurnPassedPayload{Seat: seat})

	if r.game.LastPlay == nil {
		r.publishLocked(EventTrickCleared, nil)
	}
	r.armTimerLocked()
	return r.stateLocked(), nil
}

// Hand returns a copy of one seat's current hand.
func (r *Room) Hand(seat int) ([]domain.Card, error) {
	if seat < 0 || seat >= domain.NumSeats {
		return nil, domain.ErrCardsNotOwned
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Card{}, r.game.Hands[seat]...), nil
}

// State returns a consistent snapshot. Reads briefly take the room lock so an
// observer never sees a half-applied transition.
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// ExpireTimer runs the auto-pass cascade if the active timer is due. It is
// idempotent and safe to invoke redundantly from any number of observers: with
// no timer, or a timer that is not yet due, it is a no-op.
func (r *Room) ExpireTimer() (RoomState, error) {
	if !r.mu.TryLock() {
		return RoomState{}, ErrRoomLockConflict
	}
	defer r.mu.Unlock()

	t := r.timer
	if t == nil {
		return r.stateLocked(), nil
	}
	if r.svc.clock.NowMs() < t.EndTimestamp {
		return r.stateLocked(), nil
	}

	r.timer = nil
	r.stop = nil
	r.cascadeLocked(*t)
	return r.stateLocked(), nil
}

// cascadeLocked passes every non-exempt seat in turn order. The live turn
// pointer is re-read immediately before each pass: every pass mutates it, and
// a precomputed seat sequence would leave all but the first pass rejected as
// out-of-turn. A rejected pass is logged and swallowed so partial progress is
// never thrown away.
func (r *Room) cascadeLocked(t domain.AutoPassTimer) {
	for i := 0; i < domain.NumSeats-1; i++ {
		seat := r.game.CurrentTurn
		if seat == t.ExemptSeat || r.game.LastPlay == nil {
			break
		}
		if err := r.game.ApplyPass(seat); err != nil {
			r.svc.log.WithFields(logrus.Fields{
				"room": r.ID,
				"seat": seat,
			}).WithError(err).Warn("auto-pass rejected, continuing cascade")
			continue
		}
		r.publishLocked(EventAutoPassed, TurnPassedPayload{Seat: seat, Auto: true})
	}
	if r.game.LastPlay == nil {
		r.publishLocked(EventTrickCleared, nil)
	}
}

// advanceMatchLocked commits a finished match's outcome and moves to either a
// fresh deal or the terminal game-over state, inside the same transition so
// callers never observe a torn intermediate.
func (r *Room) advanceMatchLocked() {
	winner := r.game.MatchWinner
	score := r.game.LastMatchScore
	r.game.AdvanceMatch()

	r.publishLocked(EventMatchEnded, MatchEndedPayload{
		Winner: winner,
		Score:  score,
		Totals: r.game.Totals,
	})
	if r.game.Phase == domain.PhaseGameOver {
		r.publishLocked(EventGameOver, GameOverPayload{
			FinalWinner: r.game.FinalWinner,
			Totals:      r.game.Totals,
		})
	}
}

// armTimerLocked evaluates the standing lead and anchors a fresh auto-pass
// timer when it is judged unbeatable. The timer value is immutable and
// replaced wholesale; its sequence id is strictly greater than any prior
// timer's for this room so observers can discard out-of-order notifications.
func (r *Room) armTimerLocked() {
	if r.game.Phase != domain.PhasePlaying || r.game.LastPlay == nil {
		return
	}
	lead := *r.game.LastPlay
	exempt := r.game.LastPlaySeat
	if !r.svc.detector(lead, r.game.Hands, exempt) {
		return
	}

	now := r.svc.clock.NowMs()
	r.timerSeq++
	t := domain.AutoPassTimer{
		ExemptSeat:           exempt,
		EndTimestamp:         now + r.svc.autoPass.Milliseconds(),
		ServerTimeAtCreation: now,
		SequenceID:           r.timerSeq,
		TriggeringCombo:      lead,
	}
	r.timer = &t

	seq := t.SequenceID
	r.stop = r.svc.schedule(r.svc.autoPass, func() {
		r.expireScheduled(seq)
	})
	r.publishLocked(EventTimerStarted, TimerStartedPayload{Timer: t})
}

// expireScheduled is the internal expiry path driven by the scheduler. It only
// acts for the timer generation it was armed for; a cancelled stop call that
// leaked through is harmless. Lock contention retries through the scheduler
// rather than blocking the timer goroutine.
func (r *Room) expireScheduled(seq uint64) {
	if !r.mu.TryLock() {
		r.svc.schedule(expiryRetryDelay, func() { r.expireScheduled(seq) })
		return
	}
	defer r.mu.Unlock()

	t := r.timer
	if t == nil || t.SequenceID != seq {
		return
	}
	if r.svc.clock.NowMs() < t.EndTimestamp {
		return
	}
	r.timer = nil
	r.stop = nil
	r.cascadeLocked(*t)
}

func (r *Room) clearTimerLocked() {
	if r.timer == nil {
		return
	}
	r.timer = nil
	if r.stop != nil {
		r.stop() // best effort; a missed stop is caught by the sequence guard
		r.stop = nil
	}
	r.publishLocked(EventTimerCleared, nil)
}

func (r *Room) stateLocked() RoomState {
	s := RoomState{Turn: r.game.Snapshot()}
	if r.timer != nil {
		t := *r.timer
		s.Timer = &t
	}
	return s
}

func (r *Room) publishLocked(kind EventKind, payload any) {
	r.svc.dist.Publish(r.ID, Event{
		Kind:    kind,
		RoomID:  r.ID,
		Payload: payload,
		State:   r.stateLocked(),
	})
}
