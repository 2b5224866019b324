// Field preview tool - renders the particle field on the software canvas and
// exposes its options as sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/field"
	"github.com/pthm-cable/driftfield/host"
	"github.com/pthm-cable/driftfield/renderer/canvassurface"
)

const (
	windowWidth   = 1100
	windowHeight  = 720
	previewWidth  = 640
	previewHeight = 400
	panelWidth    = windowWidth - previewWidth - 30
	curveHeight   = 160
)

// PreviewParams holds the tunable field options.
type PreviewParams struct {
	BaseCount float32
	Opacity   float32
	Link      bool
	Grid      bool
	Seed      int64
}

func defaultParams() PreviewParams {
	return PreviewParams{
		BaseCount: field.DefaultBaseCount,
		Opacity:   0.5,
		Link:      true,
		Seed:      12345,
	}
}

func (p PreviewParams) options() field.Options {
	opts := field.DefaultOptions()
	opts.BaseCount = int(p.BaseCount + 0.5)
	opts.Opacity = float64(p.Opacity)
	opts.Link = p.Link
	opts.Broadphase = field.BroadphasePairwise
	if p.Grid {
		opts.Broadphase = field.BroadphaseGrid
	}
	opts.Rand = rand.New(rand.NewSource(p.Seed))
	return opts
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()

	surface := canvassurface.New(previewWidth, previewHeight, 1)
	surface.SetBackground(color.RGBA{R: 11, G: 13, B: 23, A: 255})
	loop := host.NewFrameLoop()

	img := rl.GenImageColor(previewWidth, previewHeight, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	pixels := make([]color.RGBA, previewWidth*previewHeight)

	var engine *field.Engine
	restart := func() {
		engine.Stop()
		engine = field.Start(field.Host{Surface: surface, Scheduler: loop}, params.options())
		// One frame so a paused preview still shows the new set.
		loop.Tick()
	}
	restart()
	defer func() { engine.Stop() }()

	animating := true

	for !rl.WindowShouldClose() {
		if animating {
			loop.Tick()
		}
		updateTexture(texture, surface, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexture(texture, 10, 10, rl.White)
		rl.DrawRectangleLines(10, 10, previewWidth, previewHeight, rl.DarkGray)

		statsY := int32(previewHeight + 20)
		rl.DrawText(fmt.Sprintf("Particles: %d  Links: %d  Frame: %d", engine.Count(), engine.LastLinks(), engine.Frames()), 15, statsY, 16, rl.DarkGray)

		drawFalloff(10, statsY+30, previewWidth, curveHeight, float64(params.Opacity))

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false

		rl.DrawText("Base count (particles at 1440x900)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"20", "600",
			params.BaseCount, 20, 600,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.BaseCount), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newCount != params.BaseCount {
			params.BaseCount = newCount
			changed = true
		}
		panelY += 35

		rl.DrawText("Opacity (link alpha at zero distance)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newOpacity := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "1.0",
			params.Opacity, 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Opacity), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newOpacity != params.Opacity {
			params.Opacity = newOpacity
			changed = true
		}
		panelY += 40

		if link := gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Link neighbours", params.Link); link != params.Link {
			params.Link = link
			changed = true
		}
		panelY += 30

		if grid := gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Grid broad phase", params.Grid); grid != params.Grid {
			params.Grid = grid
			changed = true
		}
		panelY += 40

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Pause", "Animate")) {
			animating = !animating
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Step") {
			loop.Tick()
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			changed = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			changed = true
		}
		panelY += 55

		if changed {
			restart()
		}

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := configYAML(params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func configYAML(p PreviewParams) string {
	broadphase := "pairwise"
	if p.Grid {
		broadphase = "grid"
	}
	return fmt.Sprintf(`field:
  base_count: %.0f
  opacity: %.2f
  link: %t
  broadphase: %s`, p.BaseCount, p.Opacity, p.Link, broadphase)
}

// drawFalloff plots link alpha and stroke width against distance, out to the link range.
func drawFalloff(x, y, w, h int32, opacity float64) {
	rl.DrawRectangleLines(x, y, w, h, rl.LightGray)
	rl.DrawText("link alpha (blue) and width (orange) vs distance", x+6, y+4, 12, rl.Gray)

	prevAlpha := rl.Vector2{X: float32(x), Y: float32(y + h)}
	prevWidth := prevAlpha
	for px := int32(0); px <= w; px += 4 {
		d := float64(px) / float64(w) * field.MaxLinkDist
		t := 1 - d/field.MaxLinkDist

		alpha := rl.Vector2{X: float32(x + px), Y: float32(y+h) - float32(opacity*t)*float32(h-20)}
		width := rl.Vector2{X: float32(x + px), Y: float32(y+h) - float32(field.LinkWidth(t)/field.LinkWidthScale)*float32(h-20)}
		if px > 0 {
			rl.DrawLineEx(prevAlpha, alpha, 2, rl.Blue)
			rl.DrawLineEx(prevWidth, width, 2, rl.Orange)
		}
		prevAlpha, prevWidth = alpha, width
	}
	rl.DrawText(fmt.Sprintf("%.0f px", field.MaxLinkDist), x+w-50, y+h-16, 12, rl.Gray)
}

// updateTexture copies the canvas pixels into the preview texture.
func updateTexture(texture rl.Texture2D, surface *canvassurface.Surface, pixels []color.RGBA) {
	img := surface.Image()
	b := img.Bounds()
	if b.Dx() != previewWidth || b.Dy() != previewHeight {
		return
	}
	for i := range pixels {
		o := i * 4
		pixels[i] = color.RGBA{R: img.Pix[o], G: img.Pix[o+1], B: img.Pix[o+2], A: img.Pix[o+3]}
	}
	rl.UpdateTexture(texture, pixels)
}
