package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated field statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	Frames           int     `csv:"frames"`
	Width            float64 `csv:"width"`
	Height           float64 `csv:"height"`

	// Particle count at window end
	Particles int `csv:"particles"`

	// Links drawn per frame
	LinksMean float64 `csv:"links_mean"`
	LinksStd  float64 `csv:"links_std"`
	LinksMin  int     `csv:"links_min"`
	LinksMax  int     `csv:"links_max"`

	// Lifecycle events during window
	Resizes  int `csv:"resizes"`
	Restarts int `csv:"restarts"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("links_mean", s.LinksMean),
		slog.Int("links_max", s.LinksMax),
		slog.Int("resizes", s.Resizes),
		slog.Int("restarts", s.Restarts),
	)
}

// LinkStats calculates mean, std, min and max of per-frame link counts.
func LinkStats(counts []float64) (mean, std float64, min, max int) {
	if len(counts) == 0 {
		return 0, 0, 0, 0
	}
	mean, std = stat.MeanStdDev(counts, nil)
	if len(counts) < 2 {
		std = 0
	}
	lo, hi := counts[0], counts[0]
	for _, c := range counts[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return mean, std, int(lo), int(hi)
}
