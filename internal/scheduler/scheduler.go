// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tamzrod/sun2000-bridge/internal/registers"
)

// Reader reads one catalogue entry; ok=false means unavailable this cycle.
type Reader interface {
	Read(spec registers.Spec) (value string, ok bool)
}

// Publisher is the per-broker surface the scheduler drives.
type Publisher interface {
	Publish(register, value string) bool
	ServiceTick()
	ClearCache()
}

// Config is the minimal runtime config the scheduler needs.
type Config struct {
	Interval      time.Duration // sleep between cycles
	FlushInterval time.Duration // forced cache invalidation period
}

// Scheduler owns the catalogue, the publisher list and the flush timer.
// Single goroutine: reads, publishes and ticks run strictly in sequence.
type Scheduler struct {
	cfg        Config
	reader     Reader
	catalogue  []registers.Spec
	publishers []Publisher

	lastFlush time.Time
	now       func() time.Time

	log zerolog.Logger
}

// New creates a scheduler with immutable config.
// The flush timer starts now.
func New(cfg Config, reader Reader, catalogue []registers.Spec, publishers []Publisher) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("scheduler: interval must be > 0")
	}
	if cfg.FlushInterval <= 0 {
		return nil, errors.New("scheduler: flush interval must be > 0")
	}
	if reader == nil {
		return nil, errors.New("scheduler: reader required")
	}
	if len(catalogue) == 0 {
		return nil, errors.New("scheduler: empty catalogue")
	}

	s := &Scheduler{
		cfg:        cfg,
		reader:     reader,
		catalogue:  catalogue,
		publishers: publishers,
		now:        time.Now,
		log:        log.With().Str("component", "scheduler").Logger(),
	}
	s.lastFlush = s.now()

	return s, nil
}

// Cycle performs exactly one poll cycle.
// It has no error path: unavailable registers are skipped and
// disconnected publishers decline the value.
func (s *Scheduler) Cycle() {
	for _, spec := range s.catalogue {
		value, ok := s.reader.Read(spec)
		if !ok {
			continue
		}

		for _, p := range s.publishers {
			p.Publish(spec.Name, value)
		}

		s.log.Debug().Str("register", spec.Name).Str("value", value).Msg("reading")
	}

	flush := false
	if now := s.now(); now.Sub(s.lastFlush) > s.cfg.FlushInterval {
		flush = true
		s.lastFlush = now
		s.log.Debug().Msg("flushing publisher caches")
	}

	for _, p := range s.publishers {
		p.ServiceTick()
		if flush {
			p.ClearCache()
		}
	}
}

// Run cycles until ctx is cancelled, sleeping Interval after each cycle.
func (s *Scheduler) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		s.Cycle()
		timer.Reset(s.cfg.Interval)
	}
}
