// Package nakama hosts the engine inside a Nakama authoritative match. The
// match loop is single threaded, so it doubles as the room's sole caller; the
// per-room lock never sees contention here and timer expiry is tick driven
// through the engine's idempotent OnTimerExpired.
package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"bigtwo/internal/domain"
	"bigtwo/internal/engine"
	"bigtwo/internal/ports"
)

var _ ports.RoomDirectory = (*MatchState)(nil)

// MatchState holds the host-side state for one Nakama match: the seat map and
// the engine room backing it. Game state lives in the engine.
type MatchState struct {
	Seats     [4]string                   `json:"seats"` // user IDs; "" means open
	Presences map[string]runtime.Presence `json:"-"`
	Svc       *engine.Service             `json:"-"`
	RoomID    string                      `json:"room_id"`

	// MatchNumber mirrors the engine's match counter so the handler can detect
	// fresh deals and re-send private hands.
	MatchNumber int `json:"match_number"`
}

// SeatsFor implements the room directory contract: a room id maps to 4 stable
// seat occupants.
func (ms *MatchState) SeatsFor(roomID string) ([4]string, error) {
	if roomID != ms.RoomID {
		return [4]string{}, engine.ErrRoomNotFound
	}
	return ms.Seats, nil
}

func (ms *MatchState) openSeatCount() int {
	count := 0
	for _, userID := range ms.Seats {
		if userID == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, id := range ms.Seats {
		if id == userID {
			return i
		}
	}
	return -1
}

// dispatcherDistributor forwards engine events to the current match
// dispatcher. The dispatcher is rebound at the top of every callback; the
// match loop is single threaded so the plain field is safe.
type dispatcherDistributor struct {
	dispatcher runtime.MatchDispatcher
	logger     runtime.Logger
}

func (dd *dispatcherDistributor) Publish(roomID string, ev engine.Event) {
	if dd.dispatcher == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		dd.logger.Error("Publish: marshal event: %v", err)
		return
	}
	if err := dd.dispatcher.BroadcastMessage(OpRoomEvent, data, nil, nil, true); err != nil {
		dd.logger.Warn("Publish: broadcast failed: %v", err)
	}
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{dist: &dispatcherDistributor{}}, nil
}

type matchHandler struct {
	dist *dispatcherDistributor
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	mh.dist.logger = logger

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		Svc: engine.NewService(
			engine.WithDistributor(mh.dist),
			engine.WithTimerScheduler(engine.ManualTimers),
		),
	}

	label, err := json.Marshal(map[string]any{
		MatchLabelKeyOpenSeats: 4,
		"game":                 "bigtwo",
	})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second; expiry polling needs no more
	return state, tickRate, string(label)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow rejoin; disallow new joins once the table is full.
	if _, rejoining := matchState.Presences[presence.GetUserId()]; rejoining {
		return state, true, ""
	}
	if matchState.openSeatCount() == 0 {
		return state, false, "match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}
	mh.dist.dispatcher = dispatcher

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if matchState.seatOf(userID) >= 0 {
			// Rejoin: refresh the private hand if a game is running.
			mh.sendHand(matchState, dispatcher, logger, matchState.seatOf(userID))
			continue
		}

		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = userID
				evt, _ := json.Marshal(map[string]any{"user_id": userID, "seat": i})
				_ = dispatcher.BroadcastMessage(OpPlayerJoined, evt, nil, nil, true)
				break
			}
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)

	// All four seats taken: deal and start.
	if matchState.RoomID == "" && matchState.openSeatCount() == 0 {
		mh.startGame(matchState, dispatcher, logger)
	}
	return matchState
}

func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}
	mh.dist.dispatcher = dispatcher

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		// Seats stay reserved while a game runs so a disconnected player can
		// rejoin; an unstarted table frees the seat.
		if matchState.RoomID == "" {
			if seat := matchState.seatOf(userID); seat >= 0 {
				matchState.Seats[seat] = ""
			}
		}

		evt, _ := json.Marshal(map[string]any{"user_id": userID})
		_ = dispatcher.BroadcastMessage(OpPlayerLeft, evt, nil, nil, true)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: no presences left, terminating match")
		if matchState.RoomID != "" {
			matchState.Svc.CloseRoom(matchState.RoomID)
		}
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	mh.dist.dispatcher = dispatcher

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPlayCards:
			mh.handlePlayCards(matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode %d", msg.GetOpCode())
		}
	}

	// Tick-driven expiry: a no-op unless a timer is due, and idempotent when
	// several ticks race a manual action.
	if matchState.RoomID != "" {
		if _, err := matchState.Svc.OnTimerExpired(matchState.RoomID); err != nil {
			logger.Warn("MatchLoop: timer expiry: %v", err)
		}
		mh.syncMatchNumber(matchState, dispatcher, logger)
	}
	return matchState
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok && matchState.RoomID != "" {
		matchState.Svc.CloseRoom(matchState.RoomID)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

/* ---- handlers ---- */

func (mh *matchHandler) startGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.RoomID = state.Svc.CreateRoom()

	snapshot, err := state.Svc.GetState(state.RoomID)
	if err != nil {
		logger.Error("startGame: %v", err)
		return
	}
	state.MatchNumber = snapshot.Turn.MatchNumber

	for seat := range state.Seats {
		mh.sendHand(state, dispatcher, logger, seat)
	}

	evt, _ := json.Marshal(snapshot)
	_ = dispatcher.BroadcastMessage(OpGameStarted, evt, nil, nil, true)
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) handlePlayCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat := state.seatOf(msg.GetUserId())
	if state.RoomID == "" || seat < 0 {
		return
	}

	var payload struct {
		Cards []domain.Card `json:"cards"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "bad payload")
		return
	}

	if _, err := state.Svc.Play(state.RoomID, seat, payload.Cards); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err.Error())
		return
	}
	mh.sendHand(state, dispatcher, logger, seat)
	mh.syncMatchNumber(state, dispatcher, logger)
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat := state.seatOf(msg.GetUserId())
	if state.RoomID == "" || seat < 0 {
		return
	}
	if _, err := state.Svc.Pass(state.RoomID, seat); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err.Error())
	}
}

// syncMatchNumber re-sends private hands after a fresh deal.
func (mh *matchHandler) syncMatchNumber(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot, err := state.Svc.GetState(state.RoomID)
	if err != nil {
		return
	}
	if snapshot.Turn.MatchNumber == state.MatchNumber {
		return
	}
	state.MatchNumber = snapshot.Turn.MatchNumber
	for seat := range state.Seats {
		mh.sendHand(state, dispatcher, logger, seat)
	}
}

func (mh *matchHandler) sendHand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	if state.RoomID == "" {
		return
	}
	presence, ok := state.Presences[state.Seats[seat]]
	if !ok {
		return
	}
	hand, err := state.Svc.Hand(state.RoomID, seat)
	if err != nil {
		logger.Error("sendHand: %v", err)
		return
	}
	payload, _ := json.Marshal(map[string]any{"seat": seat, "hand": hand})
	_ = dispatcher.BroadcastMessage(OpHandDealt, payload, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	payload, _ := json.Marshal(map[string]string{"error": message})
	_ = dispatcher.BroadcastMessage(OpActionError, payload, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := json.Marshal(map[string]any{
		MatchLabelKeyOpenSeats: state.openSeatCount(),
		"game":                 "bigtwo",
	})
	if err != nil {
		logger.Error("updateLabel: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(label)); err != nil {
		logger.Warn("updateLabel: %v", err)
	}
}
