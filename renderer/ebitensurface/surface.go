// Package ebitensurface adapts an ebiten screen image to the field.Surface interface.
package ebitensurface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/pthm-cable/driftfield/field"
)

// Surface draws onto the screen image handed to ebiten's Draw. The screen is
// laid out in physical pixels; drawing coordinates are scaled up from logical ones.
type Surface struct {
	screen     *ebiten.Image
	w, h       int
	ratio      float64
	scale      float32
	background color.Color
}

// New creates a surface that clears to background.
func New(background color.Color) *Surface {
	return &Surface{ratio: 1, scale: 1, background: background}
}

// SetLayout records the logical window size and device scale factor.
func (s *Surface) SetLayout(w, h int, ratio float64) {
	if !(ratio > 0) {
		ratio = 1
	}
	s.w, s.h, s.ratio = w, h, ratio
}

// SetTarget sets the image the next frame is drawn on.
func (s *Surface) SetTarget(screen *ebiten.Image) {
	s.screen = screen
}

// Layout returns the logical size and ratio, for host.Watcher.
func (s *Surface) Layout() (float64, float64, float64) {
	return float64(s.w), float64(s.h), s.ratio
}

// Size implements field.Surface.
func (s *Surface) Size() (float64, float64) {
	return float64(s.w), float64(s.h)
}

// PixelRatio implements field.Surface.
func (s *Surface) PixelRatio() float64 {
	return s.ratio
}

// SetScale implements field.Surface.
func (s *Surface) SetScale(ratio float64) {
	s.scale = float32(ratio)
}

// Clear implements field.Surface.
func (s *Surface) Clear() {
	if s.screen == nil {
		return
	}
	if s.background != nil {
		s.screen.Fill(s.background)
		return
	}
	s.screen.Clear()
}

// FillCircle implements field.Surface.
func (s *Surface) FillCircle(x, y, radius float64, paint field.Paint) {
	if s.screen == nil {
		return
	}
	k := s.scale
	vector.DrawFilledCircle(s.screen, float32(x)*k, float32(y)*k, float32(radius)*k, paint.NRGBA(), true)
}

// StrokeLine implements field.Surface.
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, paint field.Paint) {
	if s.screen == nil {
		return
	}
	k := s.scale
	vector.StrokeLine(s.screen, float32(x1)*k, float32(y1)*k, float32(x2)*k, float32(y2)*k, float32(width)*k, paint.NRGBA(), true)
}
