// Particle field hosted by ebiten instead of raylib.
//
// Usage: go run ./cmd/fieldebiten [-config path] [-seed n]
package main

import (
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/field"
	"github.com/pthm-cable/driftfield/host"
	"github.com/pthm-cable/driftfield/renderer/ebitensurface"
)

type game struct {
	cfg     *config.Config
	rng     *rand.Rand
	surface *ebitensurface.Surface
	loop    *host.FrameLoop
	bus     *host.ResizeBus
	watcher *host.Watcher
	engine  *field.Engine
	opts    field.Options
}

func newGame(cfg *config.Config, seed int64) *game {
	g := &game{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		surface: ebitensurface.New(cfg.Derived.Background),
		loop:    host.NewFrameLoop(),
		bus:     host.NewResizeBus(),
		opts:    cfg.FieldOptions(),
	}
	g.surface.SetLayout(cfg.Screen.Width, cfg.Screen.Height, deviceScale())
	g.watcher = host.NewWatcher(g.surface.Layout, g.bus)
	g.start()
	return g
}

func (g *game) start() {
	opts := g.opts
	opts.Rand = g.rng
	g.engine = field.Start(field.Host{Surface: g.surface, Scheduler: g.loop, Resize: g.bus}, opts)
}

func (g *game) restart() {
	g.engine.Stop()
	g.start()
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.opts.Link = !g.opts.Link
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.engine.Running() {
			g.engine.Stop()
		} else {
			g.start()
		}
	}
	g.watcher.Poll()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	if g.loop.Tick() == 0 {
		// Stopped: keep the background only.
		g.surface.Clear()
	}
	ebitenutil.DebugPrintAt(screen, "L: links  Space: start/stop  Esc: quit", 12, 12)
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := deviceScale()
	g.surface.SetLayout(outsideWidth, outsideHeight, ratio)
	return int(float64(outsideWidth) * ratio), int(float64(outsideHeight) * ratio)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("Drift Field")
	ebiten.SetTPS(cfg.Screen.TargetFPS)
	if cfg.Screen.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := newGame(cfg, rngSeed)
	slog.Info("starting ebiten host", "seed", rngSeed, "particles", g.engine.Count())

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("ebiten host exited", "error", err)
		os.Exit(1)
	}
	g.engine.Stop()
}
