package field

type circleCall struct {
	X, Y, R float64
	Paint   Paint
}

type lineCall struct {
	X1, Y1, X2, Y2, Width float64
	Paint                 Paint
}

type recordingSurface struct {
	w, h   float64
	ratio  float64
	scale  float64
	clears int

	circles []circleCall
	lines   []lineCall
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{w: w, h: h, ratio: 1}
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordingSurface) PixelRatio() float64      { return s.ratio }
func (s *recordingSurface) SetScale(r float64)       { s.scale = r }

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}

func (s *recordingSurface) FillCircle(x, y, r float64, p Paint) {
	s.circles = append(s.circles, circleCall{x, y, r, p})
}

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2, width float64, p Paint) {
	s.lines = append(s.lines, lineCall{x1, y1, x2, y2, width, p})
}

type manualScheduler struct {
	next      FrameID
	pending   map[FrameID]func()
	cancelled int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: make(map[FrameID]func())}
}

func (s *manualScheduler) RequestFrame(fn func()) FrameID {
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *manualScheduler) CancelFrame(id FrameID) {
	if _, ok := s.pending[id]; ok {
		delete(s.pending, id)
		s.cancelled++
	}
}

// fire runs the callbacks pending at call time.
func (s *manualScheduler) fire() {
	due := s.pending
	s.pending = make(map[FrameID]func())
	for _, fn := range due {
		fn()
	}
}

type manualNotifier struct {
	subs         map[int]func()
	next         int
	unsubscribed int
}

func newManualNotifier() *manualNotifier {
	return &manualNotifier{subs: make(map[int]func())}
}

func (n *manualNotifier) Subscribe(fn func()) func() {
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			n.unsubscribed++
		}
	}
}

func (n *manualNotifier) notify() {
	for _, fn := range n.subs {
		fn()
	}
}

// sequenceRand replays a fixed cycle of values in [0, 1).
type sequenceRand struct {
	values []float64
	i      int
}

func (r *sequenceRand) Float64() float64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}
