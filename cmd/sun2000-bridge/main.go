// cmd/sun2000-bridge/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tamzrod/sun2000-bridge/internal/config"
	"github.com/tamzrod/sun2000-bridge/internal/logging"
	"github.com/tamzrod/sun2000-bridge/internal/poller"
	"github.com/tamzrod/sun2000-bridge/internal/publisher"
	"github.com/tamzrod/sun2000-bridge/internal/registers"
	"github.com/tamzrod/sun2000-bridge/internal/scheduler"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: sun2000-bridge <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validation failed")
	}

	config.Normalize(cfg)

	if err := logging.Setup(cfg.Log, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("logging setup failed")
	}

	catalogue := registers.Catalogue()
	if err := registers.Validate(catalogue); err != nil {
		log.Fatal().Err(err).Msg("register catalogue invalid")
	}

	// --------------------
	// Build bus + brokers
	// --------------------

	reader, closeBus, err := poller.Build(cfg.Bus)
	if err != nil {
		log.Fatal().Err(err).Str("mode", cfg.Bus.Mode).Msg("modbus open failed")
	}
	defer closeBus()

	pubs, closeBrokers, err := publisher.Build(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("publisher build failed")
	}
	defer closeBrokers()

	targets := make([]scheduler.Publisher, 0, len(pubs))
	for _, p := range pubs {
		targets = append(targets, p)
		log.Info().Str("broker", p.Name()).Msg("publisher ready")
	}

	s, err := scheduler.New(scheduler.Config{
		Interval:      time.Duration(cfg.Poll.IntervalMs) * time.Millisecond,
		FlushInterval: time.Duration(cfg.Poll.FlushIntervalMs) * time.Millisecond,
	}, reader, catalogue, targets)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler build failed")
	}

	// --------------------
	// Run until signalled
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("registers", len(catalogue)).
		Int("brokers", len(pubs)).
		Int("interval_ms", cfg.Poll.IntervalMs).
		Msg("bridge started")

	s.Run(ctx)

	log.Info().Msg("bridge stopped")
}
