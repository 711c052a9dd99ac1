package natsdist

import (
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"bigtwo/internal/domain"
	"bigtwo/internal/engine"
)

// Command subjects. Requests and replies are JSON; errors come back in the
// "error" field so clients can render the violated rule.
const (
	SubjectCreate = "bigtwo.room.create"
	SubjectPlay   = "bigtwo.room.play"
	SubjectPass   = "bigtwo.room.pass"
	SubjectState  = "bigtwo.room.state"
	SubjectExpire = "bigtwo.room.expire"
	SubjectNow    = "bigtwo.clock.now"
)

type playRequest struct {
	RoomID string        `json:"room_id"`
	Seat   int           `json:"seat"`
	Cards  []domain.Card `json:"cards"`
}

type roomRequest struct {
	RoomID string `json:"room_id"`
	Seat   int    `json:"seat"`
}

type stateReply struct {
	State *engine.RoomState `json:"state,omitempty"`
	Error string            `json:"error,omitempty"`
	Kind  domain.ErrorKind  `json:"kind,omitempty"`
	// Retryable marks recoverable failures (lost lock race); the caller should
	// refresh state and retry.
	Retryable bool `json:"retryable,omitempty"`
}

// Serve subscribes the engine's command surface on the given connection.
func Serve(nc *nats.Conn, svc *engine.Service, log *logrus.Logger) error {
	if _, err := nc.Subscribe(SubjectCreate, func(m *nats.Msg) {
		id := svc.CreateRoom()
		respond(nc, m, map[string]string{"room_id": id}, log)
	}); err != nil {
		return err
	}

	if _, err := nc.Subscribe(SubjectPlay, func(m *nats.Msg) {
		var req playRequest
		if err := json.Unmarshal(m.Data, &req); err != nil {
			respond(nc, m, stateReply{Error: "bad request"}, log)
			return
		}
		state, err := svc.Play(req.RoomID, req.Seat, req.Cards)
		respond(nc, m, toReply(state, err), log)
	}); err != nil {
		return err
	}

	if _, err := nc.Subscribe(SubjectPass, func(m *nats.Msg) {
		var req roomRequest
		if err := json.Unmarshal(m.Data, &req); err != nil {
			respond(nc, m, stateReply{Error: "bad request"}, log)
			return
		}
		state, err := svc.Pass(req.RoomID, req.Seat)
		respond(nc, m, toReply(state, err), log)
	}); err != nil {
		return err
	}

	if _, err := nc.Subscribe(SubjectState, func(m *nats.Msg) {
		var req roomRequest
		if err := json.Unmarshal(m.Data, &req); err != nil {
			respond(nc, m, stateReply{Error: "bad request"}, log)
			return
		}
		state, err := svc.GetState(req.RoomID)
		respond(nc, m, toReply(state, err), log)
	}); err != nil {
		return err
	}

	if _, err := nc.Subscribe(SubjectExpire, func(m *nats.Msg) {
		var req roomRequest
		if err := json.Unmarshal(m.Data, &req); err != nil {
			respond(nc, m, stateReply{Error: "bad request"}, log)
			return
		}
		state, err := svc.OnTimerExpired(req.RoomID)
		respond(nc, m, toReply(state, err), log)
	}); err != nil {
		return err
	}

	// Authoritative clock, so observers can anchor their one-time offset.
	if _, err := nc.Subscribe(SubjectNow, func(m *nats.Msg) {
		respond(nc, m, map[string]int64{"now_ms": svc.NowMs()}, log)
	}); err != nil {
		return err
	}

	return nil
}

func toReply(state engine.RoomState, err error) stateReply {
	if err != nil {
		return stateReply{
			Error:     err.Error(),
			Kind:      domain.KindOf(err),
			Retryable: errors.Is(err, engine.ErrRoomLockConflict),
		}
	}
	return stateReply{State: &state}
}

func respond(nc *nats.Conn, m *nats.Msg, payload any, log *logrus.Logger) {
	if m.Reply == "" {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("marshal reply")
		return
	}
	if err := nc.Publish(m.Reply, data); err != nil {
		log.WithError(err).Warn("publish reply")
	}
}
