// Package game hosts the particle field in a raylib window, or headless on an
// offscreen canvas, and wires its frame observer into telemetry.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/field"
	"github.com/pthm-cable/driftfield/host"
	"github.com/pthm-cable/driftfield/renderer"
	"github.com/pthm-cable/driftfield/renderer/canvassurface"
	"github.com/pthm-cable/driftfield/telemetry"
	"github.com/pthm-cable/driftfield/ui"
)

// Title is the window title and HUD heading.
const Title = "Drift Field"

// Options configures a Game.
type Options struct {
	Seed        int64
	LogStats    bool
	StatsWindow int    // frames per stats window, 0 = config
	OutputDir   string // CSV and config snapshot directory, empty = disabled
	Headless    bool
	Snapshot    string // PNG written by Finish in headless mode
}

// Game holds the complete host state around one field engine.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	logger *slog.Logger

	// Host capabilities handed to the engine
	loop    *host.FrameLoop
	bus     *host.ResizeBus
	watcher *host.Watcher
	surface field.Surface

	// Exactly one of these backs surface
	window *renderer.RaylibSurface
	canvas *canvassurface.Surface

	engine    *field.Engine
	fieldOpts field.Options

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	recorder      *telemetry.Recorder
	outputManager *telemetry.OutputManager
	logStats      bool
	logInterval   uint64

	// UI (graphics mode only)
	hud         *ui.HUD
	perfPanel   *ui.PerfPanel
	tuning      *ui.TuningPanel
	showPerf    bool
	unsubResize func()

	frame    uint64
	headless bool
	snapshot string
}

// NewGame creates a new game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a new game with the specified options.
// In graphics mode the raylib window must already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		logger:        slog.Default().With("component", "game"),
		loop:          host.NewFrameLoop(),
		bus:           host.NewResizeBus(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:     telemetry.NewCollector(statsWindow),
		logStats:      opts.LogStats,
		logInterval:   uint64(cfg.Telemetry.LogInterval),
		headless:      opts.Headless,
		snapshot:      opts.Snapshot,
	}
	g.recorder = &telemetry.Recorder{Perf: g.perfCollector, Stats: g.collector}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			g.logger.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				g.logger.Error("failed to write config", "error", err)
			}
		}
	}

	if opts.Headless {
		g.canvas = canvassurface.New(cfg.Screen.Width, cfg.Screen.Height, 1)
		g.canvas.SetBackground(cfg.Derived.Background)
		g.surface = g.canvas
	} else {
		g.window = renderer.NewRaylibSurface()
		g.surface = g.window
		g.watcher = host.NewWatcher(g.windowSize, g.bus)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(0, 0, 260)
		g.tuning = ui.NewTuningPanel(0, 0, 280)
		g.layoutPanels(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	}

	// Counted ahead of the engine's own subscription so every resize lands in
	// the window that observes its re-seed.
	g.unsubResize = g.bus.Subscribe(g.collector.RecordResize)

	g.fieldOpts = cfg.FieldOptions()
	g.startEngine()
	return g
}

// windowSize reports the raylib window size for the resize watcher.
func (g *Game) windowSize() (w, h, ratio float64) {
	w, h = g.window.Size()
	return w, h, g.window.PixelRatio()
}

// Frames returns the number of host frames processed.
func (g *Game) Frames() uint64 {
	return g.frame
}

// Engine returns the current field engine.
func (g *Game) Engine() *field.Engine {
	return g.engine
}

// Unload stops the engine and releases resources. It is safe to call twice.
func (g *Game) Unload() {
	g.stopEngine()
	if g.unsubResize != nil {
		g.unsubResize()
		g.unsubResize = nil
	}
	if g.window != nil {
		g.window.Unload()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			g.logger.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
}
