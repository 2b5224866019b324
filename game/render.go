package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/ui"
)

// Update runs per-frame input handling. Field frames run inside Draw so they
// land in the field texture.
func (g *Game) Update() {
	g.handleInput()
}

// Draw renders one window frame: background, the field layer, then UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	bg := g.cfg.Derived.Background
	rl.ClearBackground(rl.Color{R: bg.R, G: bg.G, B: bg.B, A: bg.A})

	g.window.Begin()
	g.loop.Tick()
	g.window.End()

	if g.engine.Running() {
		g.window.Composite(g.cfg.Derived.LayerAlpha)
	}

	g.drawUI()
	rl.EndDrawing()

	g.perfCollector.RecordPresent()
	g.frame++
	g.flushTelemetry()
}

// drawUI renders the HUD and panels, applying any tuning edits.
func (g *Game) drawUI() {
	width, height, ratio := g.engine.Size()
	g.hud.Draw(ui.HUDData{
		Title:      Title,
		Particles:  g.engine.Count(),
		Links:      g.engine.LastLinks(),
		Frames:     g.engine.Frames(),
		FPS:        rl.GetFPS(),
		Running:    g.engine.Running(),
		Link:       g.fieldOpts.Link,
		Broadphase: g.fieldOpts.Broadphase.String(),
		Width:      width,
		Height:     height,
		Ratio:      ratio,
	})
	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsText)

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	if next, changed := g.tuning.Draw(g.fieldOpts); changed {
		g.applyOptions(next)
	}
}
