// internal/publisher/types.go
package publisher

import "time"

// Transport is the pub/sub client one Publisher drives.
//
// Service processes pending network events on the caller's goroutine,
// invoking onConnected / onDisconnected for each connection change
// observed. It waits at most timeout for the first event.
type Transport interface {
	Connect() error
	Publish(topic string, payload []byte, retain bool) error
	Service(timeout time.Duration, onConnected, onDisconnected func())
}

// State is the broker connection lifecycle state.
type State uint8

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Config is the fixed per-broker setup.
type Config struct {
	Name   string // log label
	Prefix string // topic = Prefix + register name

	// ConnectTimeout bounds the service tick after a connect attempt.
	ConnectTimeout time.Duration
	// ServiceTimeout bounds the regular per-cycle service tick.
	ServiceTimeout time.Duration
}
