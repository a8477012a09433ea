// internal/publisher/publisher.go
package publisher

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Publisher owns one broker connection, its last-published-value cache
// and the dedup decision.
//
// Not safe for concurrent use: all methods, including the connection
// callbacks delivered through Transport.Service, run on the scheduler
// goroutine.
type Publisher struct {
	cfg Config
	t   Transport

	state State
	cache map[string]string

	log zerolog.Logger
}

// New creates a disconnected publisher. It never dials.
func New(cfg Config, t Transport) *Publisher {
	return &Publisher{
		cfg:   cfg,
		t:     t,
		state: StateDisconnected,
		cache: make(map[string]string),
		log:   log.With().Str("broker", cfg.Name).Logger(),
	}
}

func (p *Publisher) Name() string    { return p.cfg.Name }
func (p *Publisher) State() State    { return p.state }
func (p *Publisher) Connected() bool { return p.state == StateConnected }

// ConnectIfNeeded makes one synchronous connect attempt when not connected,
// then runs a bounded service tick so the handshake can settle.
// Connect errors are logged and swallowed. The resulting state is set by
// the transport's callbacks, not by the attempt's outcome.
func (p *Publisher) ConnectIfNeeded() {
	if p.state == StateConnected {
		return
	}

	p.state = StateConnecting
	p.log.Info().Msg("connecting broker")

	if err := p.t.Connect(); err != nil {
		p.log.Warn().Err(err).Msg("broker connect failed")
	} else {
		p.t.Service(p.cfg.ConnectTimeout, p.onConnected, p.onDisconnected)
	}

	if p.state == StateConnecting {
		p.state = StateDisconnected
	}
}

// Publish offers one reading to the broker.
// Returns false only when the broker is not connected, in which case
// nothing is published. Once connected it returns true whether or not
// the value differed from the cached one.
func (p *Publisher) Publish(register, value string) bool {
	p.ConnectIfNeeded()

	if p.state != StateConnected {
		return false
	}

	if prev, ok := p.cache[register]; ok && prev == value {
		return true
	}

	p.cache[register] = value

	topic := p.cfg.Prefix + register
	if err := p.t.Publish(topic, []byte(value), true); err != nil {
		// Forget the value so the next cycle retries it.
		delete(p.cache, register)
		p.log.Warn().Err(err).Str("topic", topic).Msg("publish failed")
		return true
	}

	p.log.Debug().Str("topic", topic).Str("value", value).Msg("published")
	return true
}

// ServiceTick drives network event processing for an open connection.
// Must run every cycle even when nothing is published.
func (p *Publisher) ServiceTick() {
	p.t.Service(p.cfg.ServiceTimeout, p.onConnected, p.onDisconnected)
}

// ClearCache forgets every published value. Connection state is untouched.
func (p *Publisher) ClearCache() {
	clear(p.cache)
}

// ---- transport callbacks ----

func (p *Publisher) onConnected() {
	p.state = StateConnected
	p.log.Info().Msg("broker connected")
}

func (p *Publisher) onDisconnected() {
	p.state = StateDisconnected
	clear(p.cache)
	p.log.Info().Msg("broker disconnected")
}
