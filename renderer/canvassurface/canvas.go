// Package canvassurface provides a CPU-rasterized canvas surface for headless runs.
package canvassurface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/pthm-cable/driftfield/field"
)

// Surface is an offscreen, CPU-rasterized HTML5-style canvas. It backs
// headless runs and PNG snapshots.
type Surface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas

	w, h       float64
	ratio      float64
	background color.Color
}

// New creates a w x h (logical) canvas at the given pixel ratio.
func New(w, h int, ratio float64) *Surface {
	s := &Surface{}
	s.Resize(w, h, ratio)
	return s
}

// SetBackground fills cleared frames with c instead of leaving them transparent.
func (s *Surface) SetBackground(c color.Color) {
	s.background = c
}

// Resize reallocates the backing image. The physical size is the logical
// size times the ratio, rounded down.
func (s *Surface) Resize(w, h int, ratio float64) {
	if !(ratio > 0) {
		ratio = 1
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	pw := int(math.Floor(float64(w) * ratio))
	ph := int(math.Floor(float64(h) * ratio))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	s.backend = softwarebackend.New(pw, ph)
	s.cv = canvas.New(s.backend)
	s.w, s.h, s.ratio = float64(w), float64(h), ratio
}

// Size implements field.Surface.
func (s *Surface) Size() (float64, float64) {
	return s.w, s.h
}

// PixelRatio implements field.Surface.
func (s *Surface) PixelRatio() float64 {
	return s.ratio
}

// SetScale implements field.Surface.
func (s *Surface) SetScale(ratio float64) {
	s.cv.SetTransform(ratio, 0, 0, ratio, 0, 0)
}

// Clear implements field.Surface.
func (s *Surface) Clear() {
	s.cv.ClearRect(0, 0, s.w, s.h)
	if s.background != nil {
		s.cv.SetFillStyle(s.background)
		s.cv.FillRect(0, 0, s.w, s.h)
	}
}

// FillCircle implements field.Surface.
func (s *Surface) FillCircle(x, y, radius float64, paint field.Paint) {
	s.cv.BeginPath()
	s.cv.SetFillStyle(paint.NRGBA())
	s.cv.Arc(x, y, radius, 0, 2*math.Pi, false)
	s.cv.Fill()
}

// StrokeLine implements field.Surface.
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, paint field.Paint) {
	s.cv.SetStrokeStyle(paint.NRGBA())
	s.cv.SetLineWidth(width)
	s.cv.BeginPath()
	s.cv.MoveTo(x1, y1)
	s.cv.LineTo(x2, y2)
	s.cv.Stroke()
}

// Image returns the backing image in physical pixels.
func (s *Surface) Image() *image.RGBA {
	return s.backend.Image
}

// WritePNG encodes the current frame to path.
func (s *Surface) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, s.backend.Image); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return f.Close()
}
