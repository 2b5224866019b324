package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/driftfield/field"
)

func TestLinkStats(t *testing.T) {
	mean, std, lo, hi := LinkStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 {
		t.Errorf("expected mean 5, got %f", mean)
	}
	// Sample standard deviation
	if math.Abs(std-2.138) > 0.001 {
		t.Errorf("expected std ~2.138, got %f", std)
	}
	if lo != 2 || hi != 9 {
		t.Errorf("expected range [2, 9], got [%d, %d]", lo, hi)
	}

	if mean, std, lo, hi := LinkStats(nil); mean != 0 || std != 0 || lo != 0 || hi != 0 {
		t.Error("expected zeros for empty input")
	}
	if _, std, _, _ := LinkStats([]float64{3}); std != 0 {
		t.Errorf("expected zero std for one sample, got %f", std)
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(3)

	for i := 0; i < 2; i++ {
		c.RecordFrame(field.FrameInfo{Particles: 44, Links: 10 + i, Width: 800, Height: 600})
	}
	if c.ShouldFlush() {
		t.Fatal("flushed before window filled")
	}
	c.RecordResize()
	c.RecordFrame(field.FrameInfo{Particles: 120, Links: 30, Width: 1440, Height: 900})
	if !c.ShouldFlush() {
		t.Fatal("expected window to be full")
	}

	stats := c.Flush()
	if stats.Frames != 3 || stats.WindowEndFrame != 3 || stats.WindowStartFrame != 0 {
		t.Errorf("unexpected window bounds %+v", stats)
	}
	if stats.Particles != 120 || stats.Width != 1440 {
		t.Errorf("expected last frame values, got %+v", stats)
	}
	if stats.LinksMin != 10 || stats.LinksMax != 30 || stats.Resizes != 1 {
		t.Errorf("unexpected counters %+v", stats)
	}

	c.RecordRestart()
	c.RecordFrame(field.FrameInfo{Particles: 120, Links: 1})
	next := c.Flush()
	if next.WindowStartFrame != 3 || next.Frames != 1 || next.Resizes != 0 || next.Restarts != 1 {
		t.Errorf("expected counters reset between windows, got %+v", next)
	}
}

func TestRecorderFeedsBoth(t *testing.T) {
	pc, clock := newTestCollector(10)
	c := NewCollector(10)
	r := &Recorder{Perf: pc, Stats: c}

	r.BeginFrame()
	r.StartPhase(field.PhaseUpdate)
	clock.advance(1000)
	r.EndFrame(field.FrameInfo{Particles: 5, Links: 2})

	if c.Frame() != 1 {
		t.Errorf("expected one frame recorded, got %d", c.Frame())
	}
	if pc.Stats().AvgFrame != 1000 {
		t.Errorf("expected 1us frame, got %v", pc.Stats().AvgFrame)
	}

	// A recorder with nothing attached is inert.
	empty := &Recorder{}
	empty.BeginFrame()
	empty.StartPhase(field.PhaseLinks)
	empty.EndFrame(field.FrameInfo{})
}
