package field

// Surface is the 2D drawing target. Coordinates are device-independent pixels
// once SetScale has been applied with the surface's pixel ratio.
type Surface interface {
	// Size returns the drawable size in device-independent units.
	Size() (width, height float64)
	// PixelRatio returns the device pixel ratio (physical / logical pixels).
	PixelRatio() float64
	// SetScale establishes the transform so one drawing unit is one logical pixel.
	SetScale(ratio float64)
	Clear()
	FillCircle(x, y, radius float64, paint Paint)
	StrokeLine(x1, y1, x2, y2, width float64, paint Paint)
}

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// Scheduler delivers frame callbacks at display cadence.
type Scheduler interface {
	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func()) FrameID
	// CancelFrame drops a pending callback. Unknown or fired IDs are ignored.
	CancelFrame(id FrameID)
}

// ResizeNotifier delivers surface-size-changed notifications.
type ResizeNotifier interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Host bundles the capabilities an engine borrows from its environment.
// Resize is optional.
type Host struct {
	Surface   Surface
	Scheduler Scheduler
	Resize    ResizeNotifier
}

// Frame phase names reported to a FrameObserver.
const (
	PhaseUpdate = "update"
	PhasePoints = "points"
	PhaseLinks  = "links"
)

// FrameInfo summarises a completed frame.
type FrameInfo struct {
	Particles int
	Links     int
	Width     float64
	Height    float64
}

// FrameObserver receives per-frame timing hooks.
type FrameObserver interface {
	BeginFrame()
	StartPhase(name string)
	EndFrame(info FrameInfo)
}

type nopObserver struct{}

func (nopObserver) BeginFrame()        {}
func (nopObserver) StartPhase(string)  {}
func (nopObserver) EndFrame(FrameInfo) {}
