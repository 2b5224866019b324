// Package telemetry collects frame timings and per-window field statistics
// and writes them to CSV.
package telemetry

import "github.com/pthm-cable/driftfield/field"

// Collector accumulates frame observations within windows and produces WindowStats.
type Collector struct {
	windowFrames uint64

	frame            uint64
	windowStartFrame uint64

	// Current window tracking
	links    []float64
	last     field.FrameInfo
	resizes  int
	restarts int
}

// NewCollector creates a new stats collector.
// windowFrames: how many frames each stats window covers.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: uint64(windowFrames),
		links:        make([]float64, 0, windowFrames),
	}
}

// RecordFrame records a completed frame.
func (c *Collector) RecordFrame(info field.FrameInfo) {
	c.frame++
	c.last = info
	c.links = append(c.links, float64(info.Links))
}

// RecordResize records a surface resize.
func (c *Collector) RecordResize() {
	c.resizes++
}

// RecordRestart records an engine restart after an options change.
func (c *Collector) RecordRestart() {
	c.restarts++
}

// Frame returns the number of frames recorded so far.
func (c *Collector) Frame() uint64 {
	return c.frame
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush() bool {
	return c.frame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	mean, std, lo, hi := LinkStats(c.links)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.frame,
		Frames:           len(c.links),
		Width:            c.last.Width,
		Height:           c.last.Height,
		Particles:        c.last.Particles,
		LinksMean:        mean,
		LinksStd:         std,
		LinksMin:         lo,
		LinksMax:         hi,
		Resizes:          c.resizes,
		Restarts:         c.restarts,
	}

	// Reset for next window
	c.windowStartFrame = c.frame
	c.links = c.links[:0]
	c.resizes = 0
	c.restarts = 0

	return stats
}

// Recorder feeds field frame hooks into a PerfCollector and a Collector.
// Either may be nil.
type Recorder struct {
	Perf  *PerfCollector
	Stats *Collector
}

// BeginFrame implements field.FrameObserver.
func (r *Recorder) BeginFrame() {
	if r.Perf != nil {
		r.Perf.StartFrame()
	}
}

// StartPhase implements field.FrameObserver.
func (r *Recorder) StartPhase(name string) {
	if r.Perf != nil {
		r.Perf.StartPhase(name)
	}
}

// EndFrame implements field.FrameObserver.
func (r *Recorder) EndFrame(info field.FrameInfo) {
	if r.Perf != nil {
		r.Perf.EndFrame()
	}
	if r.Stats != nil {
		r.Stats.RecordFrame(info)
	}
}
