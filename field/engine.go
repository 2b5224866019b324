package field

import (
	"log/slog"
	"math"
	"math/rand"
	"reflect"
	"time"
)

// DefaultBaseCount is the particle count seeded on a ReferenceArea surface.
const DefaultBaseCount = 120

// Options configures an engine. Zero values are not defaults for Opacity and
// Link; start from DefaultOptions.
type Options struct {
	// BaseCount anchors density: particles per ReferenceArea. <= 0 selects DefaultBaseCount.
	BaseCount int
	// Opacity in [0,1] scales point and link alpha.
	Opacity float64
	// Link enables proximity lines.
	Link       bool
	Broadphase Broadphase

	Rand     Rand
	Logger   *slog.Logger
	Observer FrameObserver
}

// DefaultOptions returns the stock field settings.
func DefaultOptions() Options {
	return Options{
		BaseCount: DefaultBaseCount,
		Opacity:   0.5,
		Link:      true,
	}
}

func (o Options) normalized() Options {
	if o.BaseCount <= 0 {
		o.BaseCount = DefaultBaseCount
	}
	if math.IsNaN(o.Opacity) {
		o.Opacity = 0
	}
	o.Opacity = clamp01(o.Opacity)
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	return o
}

// Engine is a running particle field. It is driven entirely by its host's
// scheduler and resize notifier and must only be touched from that thread.
// All methods are safe on a nil *Engine.
type Engine struct {
	surface  Surface
	sched    Scheduler
	opts     Options
	logger   *slog.Logger
	observer FrameObserver
	links    linkFinder

	particles []Particle
	width     float64
	height    float64
	ratio     float64

	// scheduledFrame is valid only while hasFrame is set.
	scheduledFrame FrameID
	hasFrame       bool
	running        bool
	unsubscribe    func()

	frames    uint64
	lastLinks int
}

// Start seeds a field on host.Surface and schedules its first frame. It
// returns nil without error when the host lacks a surface or scheduler,
// including a nil pointer wrapped in either interface.
func Start(host Host, opts Options) *Engine {
	opts = opts.normalized()
	if isNil(host.Surface) || isNil(host.Scheduler) {
		opts.Logger.Debug("particle field not started",
			"surface", !isNil(host.Surface),
			"scheduler", !isNil(host.Scheduler),
		)
		return nil
	}
	if isNil(host.Resize) {
		host.Resize = nil
	}

	e := &Engine{
		surface:  host.Surface,
		sched:    host.Scheduler,
		opts:     opts,
		logger:   opts.Logger,
		observer: opts.Observer,
		links:    newLinkFinder(opts.Broadphase),
		running:  true,
	}
	e.reseed()

	if host.Resize != nil {
		e.unsubscribe = host.Resize.Subscribe(e.OnResize)
	}
	e.schedule()

	e.logger.Debug("particle field started",
		"width", e.width,
		"height", e.height,
		"ratio", e.ratio,
		"particles", len(e.particles),
		"link", opts.Link,
		"broadphase", opts.Broadphase.String(),
	)
	return e
}

// reseed refreshes the surface state and replaces the particle set.
func (e *Engine) reseed() {
	w, h := e.surface.Size()
	if !(w > 0) {
		w = 0
	}
	if !(h > 0) {
		h = 0
	}
	ratio := e.surface.PixelRatio()
	if !(ratio > 0) {
		ratio = 1
	}
	e.surface.SetScale(ratio)

	e.width, e.height, e.ratio = w, h, ratio
	e.particles = Seed(e.opts.Rand, TargetCount(w*h, e.opts.BaseCount), w, h)
	e.links.reset(w, h)
}

func (e *Engine) schedule() {
	e.scheduledFrame = e.sched.RequestFrame(e.Frame)
	e.hasFrame = true
}

// OnResize re-reads the surface size and re-seeds the whole particle set.
// It is a no-op once the engine has stopped.
func (e *Engine) OnResize() {
	if e == nil || !e.running || e.surface == nil {
		return
	}
	e.reseed()
	e.logger.Debug("particle field resized",
		"width", e.width,
		"height", e.height,
		"ratio", e.ratio,
		"particles", len(e.particles),
	)
}

// Frame runs one update and render pass and schedules the next frame.
func (e *Engine) Frame() {
	if e == nil || !e.running || e.surface == nil {
		return
	}
	e.hasFrame = false

	w, h := e.width, e.height
	ps := e.particles

	e.observer.BeginFrame()
	e.observer.StartPhase(PhaseUpdate)
	Step(ps, w, h)

	e.observer.StartPhase(PhasePoints)
	e.surface.Clear()
	for i := range ps {
		p := &ps[i]
		e.surface.FillCircle(p.X, p.Y, p.Size, pointPaint(p.Hue, e.opts.Opacity))
	}

	links := 0
	if e.opts.Link {
		e.observer.StartPhase(PhaseLinks)
		e.links.each(ps, func(i, j int, t float64) {
			a, b := &ps[i], &ps[j]
			e.surface.StrokeLine(a.X, a.Y, b.X, b.Y, LinkWidth(t), linkPaint(a, b, t, e.opts.Opacity))
			links++
		})
	}
	e.lastLinks = links
	e.frames++

	e.observer.EndFrame(FrameInfo{
		Particles: len(ps),
		Links:     links,
		Width:     w,
		Height:    h,
	})

	// An observer may have stopped the engine.
	if e.running {
		e.schedule()
	}
}

// Stop cancels the pending frame and detaches from resize notifications.
// Calling it more than once is harmless.
func (e *Engine) Stop() {
	if e == nil {
		return
	}
	if e.hasFrame {
		e.sched.CancelFrame(e.scheduledFrame)
		e.hasFrame = false
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if e.running {
		e.running = false
		e.logger.Debug("particle field stopped", "frames", e.frames)
	}
}

// Running reports whether the engine is scheduling frames.
func (e *Engine) Running() bool {
	return e != nil && e.running
}

// Count returns the current particle count.
func (e *Engine) Count() int {
	if e == nil {
		return 0
	}
	return len(e.particles)
}

// Particles returns a copy of the current particle set.
func (e *Engine) Particles() []Particle {
	if e == nil {
		return nil
	}
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Size returns the cached surface size and pixel ratio.
func (e *Engine) Size() (width, height, ratio float64) {
	if e == nil {
		return 0, 0, 0
	}
	return e.width, e.height, e.ratio
}

// Options returns the normalized options the engine runs with.
func (e *Engine) Options() Options {
	if e == nil {
		return Options{}
	}
	return e.opts
}

// Frames returns the number of frames rendered.
func (e *Engine) Frames() uint64 {
	if e == nil {
		return 0
	}
	return e.frames
}

// LastLinks returns the number of links drawn in the most recent frame.
func (e *Engine) LastLinks() int {
	if e == nil {
		return 0
	}
	return e.lastLinks
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or chan
// held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
