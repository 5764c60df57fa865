package cmd

import (
	"fmt"

	"github.com/quaketrack/rbfetch/internal/config"
	"github.com/quaketrack/rbfetch/internal/domain"
	"github.com/quaketrack/rbfetch/internal/fdsn"
	"github.com/quaketrack/rbfetch/internal/fetcher"
	"github.com/quaketrack/rbfetch/internal/logger"
)

// app bundles what both invocation modes need: config, logging and a ready
// fetcher for the configured stream.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	sel   domain.Selectors
	fetch *fetcher.Fetcher
}

func setup(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	log, err := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level), cfg.Log.IncludeStdout)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", cfg.Log.Path, err)
	}

	sel := domain.Selectors{
		Network:  cfg.Network,
		Station:  cfg.Station,
		Location: cfg.Location,
		Channel:  cfg.Channel,
	}

	client := fdsn.New(cfg.Server)
	log.Info("Using dataselect service %s for stream %s", client.BaseURL(), sel)

	return &app{
		cfg:   cfg,
		log:   log,
		sel:   sel,
		fetch: fetcher.New(client, sel, cfg.OutputDir, cfg.OptionalID, log),
	}, nil
}
