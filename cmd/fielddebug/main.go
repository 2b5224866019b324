// Field debug tool - renders the field through the raylib surface to a PNG
// file for inspection.
//
// Usage: go run ./cmd/fielddebug -frames 120 -out debug.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/field"
	"github.com/pthm-cable/driftfield/host"
	"github.com/pthm-cable/driftfield/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	frames := flag.Int("frames", 120, "Frames to run before capture")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Field Debug")
	defer rl.CloseWindow()

	surface := renderer.NewRaylibSurface()
	defer surface.Unload()
	loop := host.NewFrameLoop()

	opts := cfg.FieldOptions()
	opts.Rand = rand.New(rand.NewSource(*seed))
	engine := field.Start(field.Host{Surface: surface, Scheduler: loop}, opts)
	defer engine.Stop()

	for i := 0; i < *frames; i++ {
		surface.Begin()
		loop.Tick()
		surface.End()
	}

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(surface.Texture())
	rl.ImageFlipVertical(img)

	// Export to PNG
	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		w, h, ratio := engine.Size()
		fmt.Printf("Field rendered to: %s (%.0fx%.0f @%.2gx, %d particles, %d links)\n",
			*outPath, w, h, ratio, engine.Count(), engine.LastLinks())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
