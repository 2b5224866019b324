package game

import rl "github.com/gen2brain/raylib-go/raylib"

// controlsText is the key legend shown at the bottom of the window.
const controlsText = "Space: start/stop | L: links | Tab: tuning | P: perf | F11: fullscreen"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.toggleEngine()
	}

	if rl.IsKeyPressed(rl.KeyL) {
		opts := g.fieldOpts
		opts.Link = !opts.Link
		g.applyOptions(opts)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.tuning.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
}

// handleResize polls the window size and fans changes out on the resize bus.
func (g *Game) handleResize() {
	if !g.watcher.Poll() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	g.layoutPanels(w, h)
	g.logger.Debug("window resized", "width", w, "height", h)
}

// layoutPanels anchors the tuning panel to the top-right corner and the perf
// panel to the bottom-left, above the controls legend.
func (g *Game) layoutPanels(w, h int32) {
	g.tuning.SetPosition(w-290, 10)
	g.perfPanel.SetPosition(10, h-g.perfPanel.Height()-35)
}
