package redis

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// ConnState is the liveness state of the cache connection as reported by the transport.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateConnected
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// ConnTracker holds the last state reported by the transport.
// Reads are a single atomic load so callers can check it on every operation.
type ConnTracker struct {
	state  atomic.Int32
	logger *logrus.Logger
}

// NewConnTracker returns a tracker in the Connecting state.
func NewConnTracker(logger *logrus.Logger) *ConnTracker {
	t := &ConnTracker{logger: logger}
	t.state.Store(int32(StateConnecting))
	connectionAlive.Set(0)
	return t
}

// State returns the last reported state.
func (t *ConnTracker) State() ConnState {
	return ConnState(t.state.Load())
}

// IsAlive reports whether the transport last signalled a live connection.
func (t *ConnTracker) IsAlive() bool {
	return t.State() == StateConnected
}

// MarkConnected records a successful handshake or round-trip.
func (t *ConnTracker) MarkConnected() {
	t.transition(StateConnected, nil)
}

// MarkDisconnected records a transport failure.
func (t *ConnTracker) MarkDisconnected(err error) {
	t.transition(StateDisconnected, err)
}

func (t *ConnTracker) transition(next ConnState, cause error) {
	prev := ConnState(t.state.Swap(int32(next)))
	if prev == next {
		return
	}
	if next == StateConnected {
		connectionAlive.Set(1)
	} else {
		connectionAlive.Set(0)
	}
	if t.logger == nil {
		return
	}
	entry := t.logger.WithFields(logrus.Fields{"from": prev.String(), "to": next.String()})
	if cause != nil {
		entry.WithError(cause).Warn("redis: client not connected to server")
		return
	}
	entry.Info("redis: connection state changed")
}
