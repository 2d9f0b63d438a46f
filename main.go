package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/planar/config"
	"github.com/pthm-cable/planar/game"
)

// checkRunBound rejects runs that could never stop. Orbiters never arrive,
// so an unbounded run needs at least one seeker to end it.
func checkRunBound(cfg *config.Config, maxTicks int) error {
	if maxTicks <= 0 && cfg.Seekers() == 0 {
		return fmt.Errorf("-max-ticks %d needs at least one non-orbiting body (%d bodies, none seeking)", maxTicks, len(cfg.Bodies))
	}
	return nil
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 3600, "Stop after N ticks (0 = until every seeker arrives; requires at least one non-orbiting body)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := checkRunBound(cfg, *maxTicks); err != nil {
		slog.Error("invalid run", "error", err)
		os.Exit(1)
	}

	g, err := game.NewGameWithOptions(game.Options{
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"bodies", len(cfg.Bodies),
		"dt", cfg.Physics.DT,
		"max_ticks", *maxTicks,
		"output_dir", *outputDir,
	)

	for {
		g.UpdateHeadless()

		if g.Settled() {
			slog.Info("all seekers arrived", "tick", g.Tick())
			break
		}
		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}

	positions := g.Positions()
	for _, s := range g.Samples() {
		bc := cfg.Bodies[cfg.Derived.BodyIndex[s.Body]]
		slog.Info("final state",
			"body", s.Body,
			"position", positions[s.Body].String(),
			"start", bc.Position,
			"arrived", s.Arrived,
			"target_distance", s.TargetDistance,
		)
	}
}
