package field

import (
	"math"
	"math/rand"
	"testing"
)

func startTestEngine(t *testing.T, w, h float64, opts Options) (*Engine, *recordingSurface, *manualScheduler, *manualNotifier) {
	t.Helper()
	surface := newRecordingSurface(w, h)
	sched := newManualScheduler()
	notifier := newManualNotifier()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(42))
	}
	e := Start(Host{Surface: surface, Scheduler: sched, Resize: notifier}, opts)
	if e == nil {
		t.Fatal("expected engine to start")
	}
	return e, surface, sched, notifier
}

func TestStartSeedsByDensity(t *testing.T) {
	e, surface, sched, notifier := startTestEngine(t, 800, 600, DefaultOptions())

	if got := e.Count(); got != 44 {
		t.Errorf("expected 44 particles for 800x600, got %d", got)
	}
	if !e.Running() {
		t.Error("expected engine to be running")
	}
	if len(sched.pending) != 1 {
		t.Errorf("expected one scheduled frame, got %d", len(sched.pending))
	}
	if len(notifier.subs) != 1 {
		t.Errorf("expected one resize subscription, got %d", len(notifier.subs))
	}
	if surface.scale != 1 {
		t.Errorf("expected scale 1, got %f", surface.scale)
	}
}

func TestStartAppliesPixelRatio(t *testing.T) {
	surface := newRecordingSurface(1440, 900)
	surface.ratio = 2
	e := Start(Host{Surface: surface, Scheduler: newManualScheduler()}, DefaultOptions())

	if surface.scale != 2 {
		t.Errorf("expected scale 2, got %f", surface.scale)
	}
	// Density is computed on logical pixels, not physical ones.
	if e.Count() != 120 {
		t.Errorf("expected 120 particles, got %d", e.Count())
	}
}

func TestStartWithoutSurfaceDoesNothing(t *testing.T) {
	sched := newManualScheduler()
	e := Start(Host{Scheduler: sched}, DefaultOptions())
	if e != nil {
		t.Fatal("expected nil engine without a surface")
	}
	if len(sched.pending) != 0 {
		t.Error("expected no frames scheduled")
	}

	if Start(Host{Surface: newRecordingSurface(10, 10)}, DefaultOptions()) != nil {
		t.Error("expected nil engine without a scheduler")
	}

	var nilSurface *recordingSurface
	if Start(Host{Surface: nilSurface, Scheduler: sched}, DefaultOptions()) != nil {
		t.Error("expected nil engine with a nil surface pointer")
	}
	var nilSched *manualScheduler
	if Start(Host{Surface: newRecordingSurface(10, 10), Scheduler: nilSched}, DefaultOptions()) != nil {
		t.Error("expected nil engine with a nil scheduler pointer")
	}
	if len(sched.pending) != 0 {
		t.Error("expected no frames scheduled for nil pointers")
	}

	// Nil engines are inert.
	e.Frame()
	e.OnResize()
	e.Stop()
	e.Stop()
	if e.Running() || e.Count() != 0 || e.Particles() != nil {
		t.Error("expected nil engine to report nothing")
	}
}

func TestFrameAdvancesByVelocity(t *testing.T) {
	e, surface, sched, _ := startTestEngine(t, 800, 600, DefaultOptions())
	before := e.Particles()

	sched.fire()

	after := e.Particles()
	if len(after) != 44 {
		t.Fatalf("expected 44 particles, got %d", len(after))
	}
	for i := range before {
		b, a := before[i], after[i]
		if a.X != b.X+b.VX || a.Y != b.Y+b.VY {
			t.Errorf("particle %d: expected (%f, %f), got (%f, %f)", i, b.X+b.VX, b.Y+b.VY, a.X, a.Y)
		}
		wantHue := b.Hue + HueStep
		if wantHue > HueMax {
			wantHue = HueMin
		}
		if a.Hue != wantHue {
			t.Errorf("particle %d: expected hue %f, got %f", i, wantHue, a.Hue)
		}
	}

	if surface.clears != 1 {
		t.Errorf("expected one clear, got %d", surface.clears)
	}
	if len(surface.circles) != 44 {
		t.Errorf("expected 44 circles, got %d", len(surface.circles))
	}
	if len(sched.pending) != 1 {
		t.Errorf("expected next frame to be scheduled, got %d pending", len(sched.pending))
	}
	if e.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", e.Frames())
	}
}

func TestFramePointPaint(t *testing.T) {
	tests := []struct {
		opacity   float64
		wantAlpha float64
	}{
		{0.5, 0.7},
		{0.8, 0.9},
		{0, 0.2},
	}
	for _, tc := range tests {
		opts := DefaultOptions()
		opts.Opacity = tc.opacity
		_, surface, sched, _ := startTestEngine(t, 400, 300, opts)
		sched.fire()

		for _, c := range surface.circles {
			if math.Abs(c.Paint.Alpha-tc.wantAlpha) > 1e-9 {
				t.Fatalf("opacity %v: expected alpha %v, got %v", tc.opacity, tc.wantAlpha, c.Paint.Alpha)
			}
			if c.Paint.Saturation != Saturation || c.Paint.Lightness != Lightness {
				t.Fatalf("unexpected paint %+v", c.Paint)
			}
		}
	}
}

func TestFrameLinksMatchPairs(t *testing.T) {
	e, surface, sched, _ := startTestEngine(t, 800, 600, DefaultOptions())
	sched.fire()

	ps := e.Particles()
	want := 0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			dx, dy := ps[i].X-ps[j].X, ps[i].Y-ps[j].Y
			if math.Hypot(dx, dy) < MaxLinkDist {
				want++
			}
		}
	}
	if len(surface.lines) != want {
		t.Errorf("expected %d links, got %d", want, len(surface.lines))
	}
	if e.LastLinks() != want {
		t.Errorf("expected LastLinks %d, got %d", want, e.LastLinks())
	}
	for _, l := range surface.lines {
		if l.Width < MinLinkWidth || l.Width > LinkWidthScale {
			t.Errorf("link width out of range: %f", l.Width)
		}
		if l.Paint.Alpha <= 0 || l.Paint.Alpha > 0.5 {
			t.Errorf("link alpha out of range: %f", l.Paint.Alpha)
		}
	}
}

func TestFrameWithoutLinks(t *testing.T) {
	opts := DefaultOptions()
	opts.Link = false
	_, surface, sched, _ := startTestEngine(t, 800, 600, opts)
	sched.fire()

	if len(surface.lines) != 0 {
		t.Errorf("expected no links, got %d", len(surface.lines))
	}
}

func TestResizeReseeds(t *testing.T) {
	e, surface, _, notifier := startTestEngine(t, 800, 600, DefaultOptions())
	old := e.Particles()

	surface.w, surface.h = 1920, 1080
	notifier.notify()

	ps := e.Particles()
	if want := TargetCount(1920*1080, 120); len(ps) != want {
		t.Errorf("expected %d particles after resize, got %d", want, len(ps))
	}
	seen := make(map[Particle]bool, len(old))
	for _, p := range old {
		seen[p] = true
	}
	for i, p := range ps {
		if seen[p] {
			t.Errorf("particle %d survived resize: %+v", i, p)
		}
	}
	if w, h, _ := e.Size(); w != 1920 || h != 1080 {
		t.Errorf("expected cached size 1920x1080, got %fx%f", w, h)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	e, surface, sched, notifier := startTestEngine(t, 800, 600, DefaultOptions())
	sched.fire()
	before := e.Particles()

	e.Stop()
	e.Stop()

	if e.Running() {
		t.Error("expected engine to be stopped")
	}
	if len(sched.pending) != 0 {
		t.Errorf("expected no pending frames, got %d", len(sched.pending))
	}
	if sched.cancelled != 1 {
		t.Errorf("expected one cancellation, got %d", sched.cancelled)
	}
	if notifier.unsubscribed != 1 || len(notifier.subs) != 0 {
		t.Errorf("expected a single unsubscribe, got %d (%d left)", notifier.unsubscribed, len(notifier.subs))
	}

	// A stale callback or late resize must not touch state.
	clears := surface.clears
	e.Frame()
	surface.w = 100
	e.OnResize()
	if surface.clears != clears {
		t.Error("frame ran after stop")
	}
	after := e.Particles()
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("particles changed after stop")
	}
}

func TestOptionsNormalized(t *testing.T) {
	opts := Options{BaseCount: 0, Opacity: 4, Link: true}
	e, _, _, _ := startTestEngine(t, 1440, 900, opts)
	got := e.Options()
	if got.BaseCount != DefaultBaseCount {
		t.Errorf("expected default base count, got %d", got.BaseCount)
	}
	if got.Opacity != 1 {
		t.Errorf("expected opacity clamped to 1, got %f", got.Opacity)
	}
}

type countingObserver struct {
	begins int
	phases []string
	infos  []FrameInfo
}

func (o *countingObserver) BeginFrame()          { o.begins++ }
func (o *countingObserver) StartPhase(p string)  { o.phases = append(o.phases, p) }
func (o *countingObserver) EndFrame(i FrameInfo) { o.infos = append(o.infos, i) }

func TestFrameObserver(t *testing.T) {
	obs := &countingObserver{}
	opts := DefaultOptions()
	opts.Observer = obs
	e, _, sched, _ := startTestEngine(t, 800, 600, opts)
	sched.fire()
	sched.fire()

	if obs.begins != 2 || len(obs.infos) != 2 {
		t.Fatalf("expected 2 frames observed, got %d/%d", obs.begins, len(obs.infos))
	}
	want := []string{PhaseUpdate, PhasePoints, PhaseLinks}
	for i, p := range want {
		if obs.phases[i] != p {
			t.Errorf("phase %d: expected %s, got %s", i, p, obs.phases[i])
		}
	}
	info := obs.infos[1]
	if info.Particles != 44 || info.Links != e.LastLinks() || info.Width != 800 {
		t.Errorf("unexpected frame info %+v", info)
	}
}

// stoppingObserver stops its engine when a frame ends.
type stoppingObserver struct {
	countingObserver
	engine *Engine
}

func (o *stoppingObserver) EndFrame(i FrameInfo) {
	o.countingObserver.EndFrame(i)
	o.engine.Stop()
}

func TestStopDuringFrameSchedulesNothing(t *testing.T) {
	obs := &stoppingObserver{}
	opts := DefaultOptions()
	opts.Observer = obs
	e, _, sched, _ := startTestEngine(t, 800, 600, opts)
	obs.engine = e

	sched.fire()
	if e.Running() {
		t.Fatal("expected engine stopped by observer")
	}
	if len(sched.pending) != 0 {
		t.Errorf("expected no pending frames after stop, got %d", len(sched.pending))
	}
	if len(obs.infos) != 1 {
		t.Errorf("expected 1 frame observed, got %d", len(obs.infos))
	}
}
