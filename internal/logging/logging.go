// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	cfg "github.com/tamzrod/sun2000-bridge/internal/config"
)

// Setup configures the global zerolog logger.
// Expects a normalized LogConfig.
func Setup(c cfg.LogConfig, out io.Writer) error {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	switch c.Format {
	case cfg.FormatJSON:
		// raw writer
	case cfg.FormatConsole, "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	default:
		return fmt.Errorf("logging: unknown format %q", c.Format)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
