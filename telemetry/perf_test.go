package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/driftfield/field"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(field.PhaseUpdate)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(field.PhaseLinks)
		clock.advance(300 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame != 400*time.Microsecond {
		t.Errorf("expected 400us average, got %v", stats.AvgFrame)
	}
	if stats.PhaseAvg[field.PhaseUpdate] != 100*time.Microsecond {
		t.Errorf("expected 100us update, got %v", stats.PhaseAvg[field.PhaseUpdate])
	}
	if pct := stats.PhasePct[field.PhaseLinks]; pct != 75 {
		t.Errorf("expected links at 75%%, got %f", pct)
	}
	if stats.FramesPerSecond != 2500 {
		t.Errorf("expected 2500 frames/s, got %f", stats.FramesPerSecond)
	}
	if stats.StdFrame != 0 {
		t.Errorf("expected zero spread, got %v", stats.StdFrame)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestCollector(5)

	// Five slow frames then five fast ones; only the fast ones stay in the window.
	for i := 0; i < 10; i++ {
		d := time.Millisecond
		if i >= 5 {
			d = 100 * time.Microsecond
		}
		pc.StartFrame()
		pc.StartPhase(field.PhasePoints)
		clock.advance(d)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.MaxFrame != 100*time.Microsecond {
		t.Errorf("expected old samples evicted, max is %v", stats.MaxFrame)
	}
}

func TestPerfCollector_Percentiles(t *testing.T) {
	pc, clock := newTestCollector(20)
	for i := 1; i <= 20; i++ {
		pc.StartFrame()
		clock.advance(time.Duration(i) * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.MinFrame != time.Millisecond || stats.MaxFrame != 20*time.Millisecond {
		t.Errorf("unexpected min/max %v/%v", stats.MinFrame, stats.MaxFrame)
	}
	if stats.P95Frame != 19*time.Millisecond {
		t.Errorf("expected p95 of 19ms, got %v", stats.P95Frame)
	}
	if stats.StdFrame <= 0 {
		t.Error("expected positive spread")
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()
	if stats.AvgFrame != 0 || stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Errorf("unexpected empty stats %+v", stats)
	}
}

func TestPerfCollector_Present(t *testing.T) {
	pc, clock := newTestCollector(10)
	pc.RecordPresent()
	clock.advance(20 * time.Millisecond)
	pc.RecordPresent()

	if fps := pc.Stats().FPS; fps != 50 {
		t.Errorf("expected 50 fps, got %f", fps)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgFrame: 2 * time.Millisecond,
		PhasePct: map[string]float64{field.PhaseLinks: 80, field.PhaseUpdate: 5},
	}
	row := stats.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgFrameUS != 2000 || row.LinksPct != 80 || row.UpdatePct != 5 {
		t.Errorf("unexpected CSV row %+v", row)
	}
}
