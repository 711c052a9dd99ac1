// Package engine coordinates rooms: it owns the authoritative mutator for
// each table, the auto-pass timer lifecycle, and event distribution. Game
// rules live in internal/domain; transports live in internal/ports.
package engine

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bigtwo/internal/domain"
	"bigtwo/internal/ports"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomLockConflict is recoverable: the caller lost the race for the
	// room's exclusive lock and should retry against fresh state.
	ErrRoomLockConflict = errors.New("room lock conflict")
)

const (
	// DefaultAutoPassDuration is how long seats get to respond to an
	// unbeatable play before being passed automatically.
	DefaultAutoPassDuration = 15 * time.Second

	expiryRetryDelay = 50 * time.Millisecond
)

// TimerScheduler runs fn after d and returns a best-effort cancel. The default
// is time.AfterFunc; hosts that drive expiry themselves (tick loops polling
// OnTimerExpired) install ManualTimers instead.
type TimerScheduler func(d time.Duration, fn func()) (stop func() bool)

func afterFuncScheduler(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// ManualTimers schedules nothing; expiry is driven solely by OnTimerExpired.
func ManualTimers(time.Duration, func()) func() bool {
	return func() bool { return false }
}

// Service manages rooms and their lifecycles.
type Service struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	clock     ports.Clock
	dist      Distributor
	log       *logrus.Logger
	autoPass  time.Duration
	threshold int
	detector  domain.UnbeatableDetector
	schedule  TimerScheduler
	rng       *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithClock installs the authoritative time source.
func WithClock(c ports.Clock) Option { return func(s *Service) { s.clock = c } }

// WithDistributor installs the event distribution channel.
func WithDistributor(d Distributor) Option { return func(s *Service) { s.dist = d } }

// WithLogger installs the engine logger.
func WithLogger(l *logrus.Logger) Option { return func(s *Service) { s.log = l } }

// WithAutoPassDuration overrides the countdown applied to unbeatable plays.
func WithAutoPassDuration(d time.Duration) Option { return func(s *Service) { s.autoPass = d } }

// WithGameOverThreshold overrides the cumulative total that ends the game.
func WithGameOverThreshold(n int) Option { return func(s *Service) { s.threshold = n } }

// WithDetector replaces the unbeatable-play heuristic.
func WithDetector(d domain.UnbeatableDetector) Option { return func(s *Service) { s.detector = d } }

// WithTimerScheduler replaces how expiries are scheduled.
func WithTimerScheduler(ts TimerScheduler) Option { return func(s *Service) { s.schedule = ts } }

// WithRand installs the deal shuffler's randomness source.
func WithRand(r *rand.Rand) Option { return func(s *Service) { s.rng = r } }

// NewService constructs a Service with provided options or time-seeded,
// real-clock defaults.
func NewService(opts ...Option) *Service {
	s := &Service{
		rooms:     make(map[string]*Room),
		clock:     ports.RealClock{},
		dist:      NopDistributor{},
		log:       logrus.StandardLogger(),
		autoPass:  DefaultAutoPassDuration,
		threshold: domain.DefaultGameOverThreshold,
		detector:  domain.FullScanUnbeatable,
		schedule:  afterFuncScheduler,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// CreateRoom deals match 1 for a new table and returns its id. Each room gets
// its own randomness source so concurrent deals never share a rand.Rand.
func (s *Service) CreateRoom() string {
	id := uuid.NewString()

	s.mu.Lock()
	roomRng := rand.New(rand.NewSource(s.rng.Int63()))
	room := &Room{
		ID:   id,
		game: domain.NewGame(roomRng, s.threshold),
		svc:  s,
	}
	s.rooms[id] = room
	s.mu.Unlock()

	s.log.WithField("room", id).Info("room created")
	return id
}

// CloseRoom removes a room from the registry.
func (s *Service) CloseRoom(roomID string) {
	s.mu.Lock()
	room, ok := s.rooms[roomID]
	delete(s.rooms, roomID)
	s.mu.Unlock()

	if ok {
		room.mu.Lock()
		room.clearTimerLocked()
		room.mu.Unlock()
		s.log.WithField("room", roomID).Info("room closed")
	}
}

func (s *Service) room(roomID string) (*Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Play applies a play transition for a seat in a room.
func (s *Service) Play(roomID string, seat int, cards []domain.Card) (RoomState, error) {
	room, err := s.room(roomID)
	if err != nil {
		return RoomState{}, err
	}
	return room.Play(seat, cards)
}

// Pass applies a pass transition for a seat in a room.
func (s *Service) Pass(roomID string, seat int) (RoomState, error) {
	room, err := s.room(roomID)
	if err != nil {
		return RoomState{}, err
	}
	return room.Pass(seat)
}

// GetState returns a read-only snapshot of a room.
func (s *Service) GetState(roomID string) (RoomState, error) {
	room, err := s.room(roomID)
	if err != nil {
		return RoomState{}, err
	}
	return room.State(), nil
}

// Hand returns a copy of one seat's current hand, for private delivery to
// that seat's player. Hands never travel inside public snapshots.
func (s *Service) Hand(roomID string, seat int) ([]domain.Card, error) {
	room, err := s.room(roomID)
	if err != nil {
		return nil, err
	}
	return room.Hand(seat)
}

// OnTimerExpired runs the auto-pass cascade for a due timer. Idempotent: any
// caller, including multiple redundant observers, may invoke it; a second
// invocation against already-cleared timer state is a no-op.
func (s *Service) OnTimerExpired(roomID string) (RoomState, error) {
	room, err := s.room(roomID)
	if err != nil {
		return RoomState{}, err
	}
	return room.ExpireTimer()
}

// NowMs exposes the authoritative clock so observers can compute their
// one-time offset.
func (s *Service) NowMs() int64 {
	return s.clock.NowMs()
}
