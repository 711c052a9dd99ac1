package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"bigtwo/internal/engine"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	lastLabel      string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

func TestSeatHelpers(t *testing.T) {
	tests := []struct {
		name     string
		seats    [4]string
		userID   string
		wantSeat int
		wantOpen int
	}{
		{
			name:     "EmptyTable",
			seats:    [4]string{"", "", "", ""},
			userID:   "user-1",
			wantSeat: -1,
			wantOpen: 4,
		},
		{
			name:     "SeatedUser",
			seats:    [4]string{"user-2", "user-1", "", ""},
			userID:   "user-1",
			wantSeat: 1,
			wantOpen: 2,
		},
		{
			name:     "FullTable",
			seats:    [4]string{"a", "b", "c", "d"},
			userID:   "d",
			wantSeat: 3,
			wantOpen: 0,
		},
		{
			name:     "UnknownUser",
			seats:    [4]string{"a", "b", "c", "d"},
			userID:   "ghost",
			wantSeat: -1,
			wantOpen: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := &MatchState{Seats: test.seats}
			if got := state.seatOf(test.userID); got != test.wantSeat {
				t.Errorf("seatOf(%q) = %d, want %d", test.userID, got, test.wantSeat)
			}
			if got := state.openSeatCount(); got != test.wantOpen {
				t.Errorf("openSeatCount() = %d, want %d", got, test.wantOpen)
			}
		})
	}
}

func TestSeatsFor(t *testing.T) {
	state := &MatchState{
		Seats:  [4]string{"a", "b", "c", "d"},
		RoomID: "room-1",
	}

	seats, err := state.SeatsFor("room-1")
	if err != nil {
		t.Fatalf("SeatsFor() error = %v", err)
	}
	if seats != state.Seats {
		t.Errorf("SeatsFor() = %v, want %v", seats, state.Seats)
	}

	if _, err := state.SeatsFor("other-room"); !errors.Is(err, engine.ErrRoomNotFound) {
		t.Errorf("SeatsFor() error = %v, want %v", err, engine.ErrRoomNotFound)
	}
}

func TestMatchInit(t *testing.T) {
	mh := &matchHandler{dist: &dispatcherDistributor{}}

	state, tickRate, label := mh.MatchInit(context.Background(), noopLogger{}, nil, nil, nil)

	matchState, ok := state.(*MatchState)
	if !ok {
		t.Fatalf("MatchInit() state type = %T, want *MatchState", state)
	}
	if matchState.Svc == nil {
		t.Error("MatchInit() created no engine service")
	}
	if matchState.openSeatCount() != 4 {
		t.Errorf("openSeatCount() = %d, want 4", matchState.openSeatCount())
	}
	if tickRate != 1 {
		t.Errorf("tickRate = %d, want 1", tickRate)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(label), &decoded); err != nil {
		t.Fatalf("label %q is not valid JSON: %v", label, err)
	}
	if decoded[MatchLabelKeyOpenSeats] != float64(4) {
		t.Errorf("label open seats = %v, want 4", decoded[MatchLabelKeyOpenSeats])
	}
	if decoded["game"] != "bigtwo" {
		t.Errorf("label game = %v, want bigtwo", decoded["game"])
	}
}

func TestUpdateLabel(t *testing.T) {
	mh := &matchHandler{dist: &dispatcherDistributor{}}
	dispatcher := &mockDispatcher{}
	state := &MatchState{Seats: [4]string{"a", "b", "", ""}}

	mh.updateLabel(state, dispatcher, noopLogger{})

	if dispatcher.labelUpdates != 1 {
		t.Fatalf("labelUpdates = %d, want 1", dispatcher.labelUpdates)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(dispatcher.lastLabel), &decoded); err != nil {
		t.Fatalf("label %q is not valid JSON: %v", dispatcher.lastLabel, err)
	}
	if decoded[MatchLabelKeyOpenSeats] != float64(2) {
		t.Errorf("label open seats = %v, want 2", decoded[MatchLabelKeyOpenSeats])
	}
}

func TestDispatcherDistributorPublish(t *testing.T) {
	dispatcher := &mockDispatcher{}
	dd := &dispatcherDistributor{dispatcher: dispatcher, logger: noopLogger{}}

	dd.Publish("room-1", engine.Event{
		Kind:   engine.EventTrickCleared,
		RoomID: "room-1",
	})

	if dispatcher.broadcastCount != 1 {
		t.Fatalf("broadcastCount = %d, want 1", dispatcher.broadcastCount)
	}
	if dispatcher.lastOpCode != OpRoomEvent {
		t.Errorf("opcode = %d, want %d", dispatcher.lastOpCode, OpRoomEvent)
	}

	var ev engine.Event
	if err := json.Unmarshal(dispatcher.lastData, &ev); err != nil {
		t.Fatalf("broadcast payload is not a valid event: %v", err)
	}
	if ev.Kind != engine.EventTrickCleared || ev.RoomID != "room-1" {
		t.Errorf("decoded event = %+v, want trick_cleared for room-1", ev)
	}
}

func TestDispatcherDistributorWithoutDispatcher(t *testing.T) {
	dd := &dispatcherDistributor{logger: noopLogger{}}
	// Events arriving before the first callback bound a dispatcher are dropped.
	dd.Publish("room-1", engine.Event{Kind: engine.EventTimerStarted})
}
