package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run on an offscreen canvas without a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in frames (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshot := flag.String("snapshot", "", "PNG written after a headless run")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		OutputDir:   *outputDir,
		Headless:    *headless,
		Snapshot:    *snapshot,
	}

	if *headless {
		if *maxFrames <= 0 {
			*maxFrames = cfg.Screen.TargetFPS * 10
			slog.Warn("headless run needs a frame limit, using default", "max_frames", *maxFrames)
		}

		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless field",
			"seed", rngSeed,
			"width", cfg.Screen.Width,
			"height", cfg.Screen.Height,
			"max_frames", *maxFrames,
		)

		for int(g.Frames()) < *maxFrames {
			g.UpdateHeadless()
		}
		slog.Info("max frames reached", "frames", g.Frames(), "particles", g.Engine().Count())

		if err := g.Finish(); err != nil {
			slog.Error("failed to finish headless run", "error", err)
			// os.Exit skips deferred calls; flush CSV output first.
			g.Unload()
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	var flags uint32
	if cfg.Screen.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if cfg.Screen.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), game.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && int(g.Frames()) >= *maxFrames {
			break
		}
	}
}
