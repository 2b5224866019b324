package game

import "github.com/pthm-cable/driftfield/field"

// engineOptions completes the configured field options with the host's
// random source, logger and telemetry observer.
func (g *Game) engineOptions() field.Options {
	opts := g.fieldOpts
	opts.Rand = g.rng
	opts.Logger = g.logger.With("component", "field")
	opts.Observer = g.recorder
	return opts
}

// startEngine starts a fresh engine on the host capabilities. No-op while one is running.
func (g *Game) startEngine() {
	if g.engine.Running() {
		return
	}
	g.engine = field.Start(field.Host{
		Surface:   g.surface,
		Scheduler: g.loop,
		Resize:    g.bus,
	}, g.engineOptions())
}

// stopEngine stops the current engine. The window host hides the layer while stopped.
func (g *Game) stopEngine() {
	g.engine.Stop()
}

// toggleEngine stops a running engine or starts a new one.
func (g *Game) toggleEngine() {
	if g.engine.Running() {
		g.stopEngine()
		g.logger.Info("field stopped", "frames", g.engine.Frames())
		return
	}
	g.startEngine()
	g.logger.Info("field started", "particles", g.engine.Count())
}

// applyOptions replaces the field options. A running engine is torn down and
// restarted with a fresh particle set; a stopped one picks them up on its next start.
func (g *Game) applyOptions(opts field.Options) {
	g.fieldOpts = opts
	if !g.engine.Running() {
		return
	}
	g.stopEngine()
	g.startEngine()
	g.collector.RecordRestart()
	g.logger.Info("field restarted",
		"base_count", opts.BaseCount,
		"opacity", opts.Opacity,
		"link", opts.Link,
		"broadphase", opts.Broadphase.String(),
		"particles", g.engine.Count(),
	)
}
