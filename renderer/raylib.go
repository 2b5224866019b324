// Package renderer provides drawing surfaces for the particle field.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/field"
)

// RaylibSurface draws the field into an offscreen render texture sized in
// physical pixels, which the host composites onto the window.
type RaylibSurface struct {
	target rl.RenderTexture2D
	loaded bool
	tw, th int32
	scale  float32
}

// NewRaylibSurface creates a surface for the current window. The window must be open.
func NewRaylibSurface() *RaylibSurface {
	return &RaylibSurface{scale: 1}
}

// Size returns the window size in logical pixels.
func (s *RaylibSurface) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// PixelRatio returns the window's DPI scale.
func (s *RaylibSurface) PixelRatio() float64 {
	dpi := rl.GetWindowScaleDPI()
	if dpi.X <= 0 {
		return 1
	}
	return float64(dpi.X)
}

// SetScale resizes the backing texture to the physical size and sets the
// camera zoom so drawing happens in logical pixels.
func (s *RaylibSurface) SetScale(ratio float64) {
	s.scale = float32(ratio)
	w, h := s.Size()
	tw, th := int32(w*ratio), int32(h*ratio)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	if s.loaded && tw == s.tw && th == s.th {
		return
	}
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(tw, th)
	s.tw, s.th = tw, th
	s.loaded = true
}

// Begin redirects drawing into the field texture. Frames must run between Begin and End.
func (s *RaylibSurface) Begin() {
	if !s.loaded {
		s.SetScale(s.PixelRatio())
	}
	rl.BeginTextureMode(s.target)
	rl.BeginMode2D(rl.Camera2D{Zoom: s.scale})
}

// End restores drawing to the window.
func (s *RaylibSurface) End() {
	rl.EndMode2D()
	rl.EndTextureMode()
}

// Composite draws the field texture over the window with the given alpha.
func (s *RaylibSurface) Composite(alpha uint8) {
	if !s.loaded {
		return
	}
	w, h := s.Size()
	// Render textures are stored upside down.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(s.tw), Height: -float32(s.th)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)}
	rl.DrawTexturePro(s.target.Texture, src, dst, rl.Vector2{}, 0, rl.Color{R: 255, G: 255, B: 255, A: alpha})
}

// Clear erases the field texture to transparent.
func (s *RaylibSurface) Clear() {
	rl.ClearBackground(rl.Blank)
}

// FillCircle implements field.Surface.
func (s *RaylibSurface) FillCircle(x, y, radius float64, paint field.Paint) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(radius), toRaylib(paint))
}

// StrokeLine implements field.Surface.
func (s *RaylibSurface) StrokeLine(x1, y1, x2, y2, width float64, paint field.Paint) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		rl.Vector2{X: float32(x2), Y: float32(y2)},
		float32(width),
		toRaylib(paint),
	)
}

// Texture returns the field texture. Render textures are stored upside down.
func (s *RaylibSurface) Texture() rl.Texture2D {
	return s.target.Texture
}

// Unload releases the render texture.
func (s *RaylibSurface) Unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

func toRaylib(p field.Paint) rl.Color {
	c := p.NRGBA()
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
