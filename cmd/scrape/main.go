// Command scrape takes one snapshot of the race ranking page and writes a
// Scheds CSV and a GPX waypoint file for it.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/race-positions-etl/internal/adapter/fetch"
	"github.com/couchcryptid/race-positions-etl/internal/adapter/gpx"
	"github.com/couchcryptid/race-positions-etl/internal/adapter/ranking"
	"github.com/couchcryptid/race-positions-etl/internal/adapter/scheds"
	"github.com/couchcryptid/race-positions-etl/internal/config"
	"github.com/couchcryptid/race-positions-etl/internal/observability"
	"github.com/couchcryptid/race-positions-etl/internal/pipeline"
	"github.com/couchcryptid/race-positions-etl/internal/roster"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	boats, err := roster.Load(cfg.RosterFile)
	if err != nil {
		logger.Error("failed to load roster", "error", err)
		return 1
	}
	logger.Info("roster loaded", "race", boats.Race, "version", boats.Version, "boats", boats.Source.Len())

	var source pipeline.Source
	if cfg.SourceFile != "" {
		source = fetch.NewFileSource(cfg.SourceFile)
		logger.Info("reading saved ranking page", "path", cfg.SourceFile)
	} else {
		source = fetch.NewClient(cfg.SourceURL, cfg.UserAgent, cfg.FetchTimeout, logger)
		logger.Info("fetching ranking page", "url", cfg.SourceURL)
	}

	exporters := []pipeline.Exporter{
		scheds.NewWriter(cfg.OutputDir, cfg.SchedsHeader),
		gpx.NewWriter(cfg.OutputDir, boats.ASCII, gpx.Options{
			DocumentName: cfg.GPXName,
			WaypointTime: cfg.GPXWaypointTime,
			SymbolPrefix: cfg.GPXSymbolPrefix,
		}),
	}
	transformer := pipeline.NewTransformer(boats.Source, boats.ASCII, logger)
	p := pipeline.New(source, ranking.NewParser(), transformer, exporters, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, runErr := p.Run(ctx)

	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL, cfg.JobName); err != nil {
			logger.Error("metrics push failed", "url", cfg.PushgatewayURL, "error", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
