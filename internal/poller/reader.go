// internal/poller/reader.go
package poller

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tamzrod/sun2000-bridge/internal/registers"
)

// Reader performs decode-and-scale reads of catalogue entries.
// No caching: every call goes to the bus.
type Reader struct {
	bus Bus
	log zerolog.Logger
}

// NewReader creates a reader over one bus instrument.
func NewReader(bus Bus) *Reader {
	return &Reader{
		bus: bus,
		log: log.With().Str("component", "reader").Logger(),
	}
}

// Read returns the formatted value of one register.
// ok is false when the register is unavailable this cycle: the retry
// bound was exhausted, or the bus failed in a way retrying cannot fix.
// Errors never escape.
func (r *Reader) Read(spec registers.Spec) (value string, ok bool) {
	var lastErr error

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		raw, err := r.readRaw(spec)
		if err == nil {
			return spec.Format(raw * spec.Scale), true
		}

		lastErr = err
		if !isTransient(err) {
			r.log.Warn().
				Err(err).
				Str("register", spec.Name).
				Int("attempt", attempt).
				Msg("register read failed")
			return "", false
		}
	}

	r.log.Warn().
		Err(lastErr).
		Str("register", spec.Name).
		Int("attempts", MaxAttempts).
		Msg("register unavailable, retries exhausted")
	return "", false
}

// readRaw issues exactly one bus read matching the entry's encoding.
func (r *Reader) readRaw(spec registers.Spec) (float64, error) {
	switch spec.Encoding {
	case registers.SignedShort:
		v, err := r.bus.ReadSignedShort(spec.Address)
		return float64(v), err

	case registers.UnsignedShort:
		v, err := r.bus.ReadUnsignedShort(spec.Address)
		return float64(v), err

	case registers.SignedLong:
		v, err := r.bus.ReadSignedLong(spec.Address)
		return float64(v), err

	default:
		return 0, fmt.Errorf("poller: %s: unsupported %s", spec.Name, spec.Encoding)
	}
}

func isTransient(err error) bool {
	var t transient
	if errors.As(err, &t) {
		return t.Transient()
	}
	return false
}
