package game

// flushTelemetry flushes a finished stats window and logs perf on the log interval.
func (g *Game) flushTelemetry() {
	if g.logStats && g.logInterval > 0 && g.frame%g.logInterval == 0 {
		g.perfCollector.Stats().LogStats(g.logger)
	}

	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush()
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		g.logger.Info("stats", "window", stats)
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			g.logger.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}
