package engine

import "bigtwo/internal/domain"

// EventKind identifies emitted engine events for distribution to observers.
type EventKind string

const (
	EventCardPlayed   EventKind = "card_played"
	EventTurnPassed   EventKind = "turn_passed"
	EventTrickCleared EventKind = "trick_cleared"
	EventTimerStarted EventKind = "timer_started"
	EventTimerCleared EventKind = "timer_cleared"
	EventAutoPassed   EventKind = "auto_passed"
	EventMatchEnded   EventKind = "match_ended"
	EventGameOver     EventKind = "game_over"
)

// Event is an engine event delivered through the distribution channel.
// Observers always re-derive visibility from the State snapshot; the kind and
// payload exist for rendering, not correctness, so a dropped event is harmless.
type Event struct {
	Kind    EventKind `json:"kind"`
	RoomID  string    `json:"room_id"`
	Payload any       `json:"payload,omitempty"`
	State   RoomState `json:"state"`
}

// Distributor delivers events to observers. Transport is out of scope here;
// implementations live under internal/ports.
type Distributor interface {
	Publish(roomID string, ev Event)
}

// NopDistributor drops all events.
type NopDistributor struct{}

func (NopDistributor) Publish(string, Event) {}

type CardPlayedPayload struct {
	Seat  int           `json:"seat"`
	Cards []domain.Card `json:"cards"`
	Combo domain.Combo  `json:"combo"`
}

type TurnPassedPayload struct {
	Seat int  `json:"seat"`
	Auto bool `json:"auto"`
}

type TimerStartedPayload struct {
	Timer domain.AutoPassTimer `json:"timer"`
}

type MatchEndedPayload struct {
	Winner int               `json:"winner"`
	Score  domain.MatchScore `json:"score"`
	Totals domain.GameTotals `json:"totals"`
}

type GameOverPayload struct {
	FinalWinner int               `json:"final_winner"`
	Totals      domain.GameTotals `json:"totals"`
}
