package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/rng"
	"github.com/pthm-cable/biome/telemetry"
	"github.com/pthm-cable/biome/termview"
	"github.com/pthm-cable/biome/viewer"
	"github.com/pthm-cable/biome/world"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.String("seed", "", "RNG seed string (empty = time-based)")
	mode := flag.String("mode", "gui", "Run mode: headless, gui or term")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	profileMode := flag.String("profile", "", "Write a profile: cpu or mem (empty = off)")

	flag.Parse()

	if err := run(*configPath, *seed, *mode, *maxTicks, *statsWindow, *outputDir, *logStats, *profileMode); err != nil {
		slog.Error("biome failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, seed, mode string, maxTicks int64, statsWindow float64, outputDir string, logStats bool, profileMode string) error {
	switch mode {
	case "headless", "gui", "term":
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	// Initialize config before anything else
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	// Use config stats window if not overridden by CLI
	if statsWindow > 0 {
		cfg.Telemetry.StatsWindow = statsWindow
	}

	if seed == "" {
		seed = strconv.FormatInt(time.Now().UnixNano(), 36)
	}

	// Set up slog (JSON to stdout for structured logging). The terminal
	// driver owns stdout, so it logs to a file in the output dir or nowhere.
	var logOut io.Writer = os.Stdout
	if mode == "term" {
		logOut = io.Discard
		if outputDir != "" {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}
			f, err := os.Create(filepath.Join(outputDir, "biome.log"))
			if err != nil {
				return fmt.Errorf("creating log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir(outputDir)), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(profileDir(outputDir)), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", profileMode)
	}

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config snapshot", "error", err)
	}

	monitor := telemetry.NewMonitor(telemetry.MonitorOptions{
		WindowSec: cfg.Telemetry.StatsWindow,
		DT:        cfg.Physics.DT,
		Output:    output,
		Logger:    logger,
		LogStats:  logStats || mode == "headless",
	})
	defer func() {
		if err := monitor.Close(); err != nil {
			logger.Error("failed to close output", "error", err)
		}
	}()

	w := world.NewWithOptions(rng.New(seed), monitor.WorldOptions(world.Options{
		Config: cfg,
		Logger: logger,
	}))
	afterStep := func() { monitor.AfterStep(w) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting simulation",
		"mode", mode,
		"seed", seed,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", maxTicks,
		"output_dir", output.Dir(),
	)

	switch mode {
	case "headless":
		return runHeadless(ctx, w, cfg.Physics.DT, maxTicks, afterStep, logger)
	case "term":
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initialising terminal screen: %w", err)
		}
		defer screen.Fini()
		return termview.Run(ctx, screen, w, termview.Options{
			Config:    cfg,
			Logger:    logger,
			AfterStep: afterStep,
			MaxTicks:  maxTicks,
		})
	default:
		return viewer.Run(ctx, w, viewer.Options{
			Config:    cfg,
			Logger:    logger,
			Title:     "biome " + seed,
			AfterStep: afterStep,
			MaxTicks:  maxTicks,
			Perf:      monitor.Perf,
		})
	}
}

// runHeadless steps w as fast as possible until maxTicks or cancellation.
func runHeadless(ctx context.Context, w *world.World, dt float64, maxTicks int64, afterStep func(), logger *slog.Logger) error {
	start := time.Now()
	for ctx.Err() == nil {
		w.Step(dt)
		afterStep()

		if maxTicks > 0 && w.Tick() >= maxTicks {
			logger.Info("max ticks reached", "tick", w.Tick())
			break
		}
	}

	elapsed := time.Since(start)
	logger.Info("headless run finished",
		"tick", w.Tick(),
		"elapsed", elapsed.String(),
		"ticks_per_sec", float64(w.Tick())/max(elapsed.Seconds(), 1e-9),
	)
	return nil
}

func profileDir(outputDir string) string {
	if outputDir == "" {
		return "."
	}
	return outputDir
}
