// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are accepted wherever Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// BUS
	// ------------------------------------------------------------

	b := cfg.Bus

	switch b.Mode {
	case "", ModeRTU:
		// device defaults to /dev/ttyUSB0
	case ModeTCP:
		if b.Address == "" {
			return errors.New("bus: mode tcp requires address")
		}
	default:
		return fmt.Errorf("bus: unknown mode %q (want rtu or tcp)", b.Mode)
	}

	switch b.FC {
	case 0, 3, 4:
	default:
		return fmt.Errorf("bus: fc %d not supported (want 3 or 4)", b.FC)
	}

	switch b.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("bus: parity %q not supported (want N, E or O)", b.Parity)
	}

	if b.BaudRate < 0 || b.DataBits < 0 || b.StopBits < 0 {
		return errors.New("bus: baud_rate, data_bits and stop_bits must not be negative")
	}
	if b.TimeoutMs < 0 {
		return errors.New("bus: timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// BROKERS
	// ------------------------------------------------------------

	if len(cfg.Brokers) == 0 {
		return errors.New("brokers: at least one broker required")
	}

	names := make(map[string]int)

	for i, br := range cfg.Brokers {
		if br.Server == "" {
			return fmt.Errorf("brokers[%d]: server required", i)
		}
		if br.QoS > 2 {
			return fmt.Errorf("brokers[%d]: qos %d out of range (0..2)", i, br.QoS)
		}

		name := br.Name
		if name == "" {
			name = br.Server
		}
		if prev, exists := names[name]; exists {
			return fmt.Errorf(
				"brokers[%d]: name %q already used by brokers[%d]",
				i,
				name,
				prev,
			)
		}
		names[name] = i
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	p := cfg.Poll
	if p.IntervalMs < 0 || p.FlushIntervalMs < 0 || p.ConnectTimeoutMs < 0 || p.ServiceTimeoutMs < 0 {
		return errors.New("poll: intervals and timeouts must not be negative")
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}

	switch cfg.Log.Format {
	case "", FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("log: unknown format %q (want console or json)", cfg.Log.Format)
	}

	return nil
}
