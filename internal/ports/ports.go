// Package ports declares the interfaces the engine consumes from external
// collaborators. Adapters live in subpackages; the engine never depends on a
// concrete transport or host runtime.
package ports

import "time"

// Clock is the authoritative time source. Observers receive its readings
// inside timer notifications and compute their local offset from them.
type Clock interface {
	NowMs() int64
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) NowMs() int64 { return time.Now().UnixMilli() }

// RoomDirectory resolves a room identifier to its four stable seat occupants.
// Caller-to-seat authorization is assumed resolved before reaching the engine.
type RoomDirectory interface {
	SeatsFor(roomID string) ([4]string, error)
}
