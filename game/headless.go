package game

import "fmt"

// UpdateHeadless advances one host frame without a window.
func (g *Game) UpdateHeadless() {
	g.loop.Tick()
	g.frame++
	g.flushTelemetry()
}

// Finish writes the headless artifacts: the PNG snapshot when one was
// requested and the final particle set when output is enabled.
func (g *Game) Finish() error {
	if g.canvas != nil && g.snapshot != "" {
		if err := g.canvas.WritePNG(g.snapshot); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		g.logger.Info("snapshot written", "path", g.snapshot, "frame", g.frame)
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteParticles(g.engine.Particles()); err != nil {
			return fmt.Errorf("writing particles: %w", err)
		}
	}
	return nil
}
