// Package host provides the frame clock and resize plumbing a windowing loop
// hands to a particle field.
package host

import (
	"sort"

	"github.com/pthm-cable/driftfield/field"
)

// FrameLoop is a requestAnimationFrame-style scheduler driven by Tick.
// It is not safe for concurrent use; call it from the render loop only.
type FrameLoop struct {
	next    field.FrameID
	pending map[field.FrameID]func()
}

// NewFrameLoop creates an empty frame loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{pending: make(map[field.FrameID]func())}
}

// RequestFrame queues fn for the next Tick.
func (l *FrameLoop) RequestFrame(fn func()) field.FrameID {
	l.next++
	l.pending[l.next] = fn
	return l.next
}

// CancelFrame drops a queued callback.
func (l *FrameLoop) CancelFrame(id field.FrameID) {
	delete(l.pending, id)
}

// Tick runs every callback queued before the call, in request order.
// Callbacks requested while ticking run on the following Tick.
// Returns the number of callbacks run.
func (l *FrameLoop) Tick() int {
	if len(l.pending) == 0 {
		return 0
	}
	ids := make([]field.FrameID, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		// An earlier callback may have cancelled this one.
		fn, ok := l.pending[id]
		if !ok {
			continue
		}
		delete(l.pending, id)
		fn()
		ran++
	}
	return ran
}

// Pending returns the number of queued callbacks.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// ResizeBus fans out resize notifications to subscribers.
type ResizeBus struct {
	next int
	subs map[int]func()
}

// NewResizeBus creates a bus with no subscribers.
func NewResizeBus() *ResizeBus {
	return &ResizeBus{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a function that removes it.
// The returned function may be called any number of times.
func (b *ResizeBus) Subscribe(fn func()) func() {
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		delete(b.subs, id)
	}
}

// Notify calls every current subscriber in subscription order.
func (b *ResizeBus) Notify() {
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := b.subs[id]; ok {
			fn()
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *ResizeBus) Subscribers() int {
	return len(b.subs)
}

// SizeFunc reports the current logical size and pixel ratio of a surface.
type SizeFunc func() (width, height, ratio float64)

// Watcher polls a SizeFunc and notifies a bus when the result changes.
// It stands in for a native resize event on hosts that only expose polling.
type Watcher struct {
	size SizeFunc
	bus  *ResizeBus

	w, h, ratio float64
}

// NewWatcher records the current size as the baseline.
func NewWatcher(size SizeFunc, bus *ResizeBus) *Watcher {
	w := &Watcher{size: size, bus: bus}
	w.w, w.h, w.ratio = size()
	return w
}

// Poll notifies the bus if the size changed since the last poll and reports whether it did.
func (w *Watcher) Poll() bool {
	nw, nh, nr := w.size()
	if nw == w.w && nh == w.h && nr == w.ratio {
		return false
	}
	w.w, w.h, w.ratio = nw, nh, nr
	w.bus.Notify()
	return true
}
