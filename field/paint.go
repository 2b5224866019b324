package field

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Fixed colour components shared by points and links.
const (
	Saturation = 0.80
	Lightness  = 0.65

	// PointAlphaBoost is added to the configured opacity for points, capped at PointAlphaMax.
	PointAlphaBoost = 0.2
	PointAlphaMax   = 0.9
)

// Paint is an HSL colour with alpha, the unit of colour handed to a Surface.
type Paint struct {
	Hue        float64 // degrees
	Saturation float64 // 0-1
	Lightness  float64 // 0-1
	Alpha      float64 // 0-1
}

// NRGBA converts the paint to a non-premultiplied 8-bit colour.
func (p Paint) NRGBA() color.NRGBA {
	r, g, b := colorful.Hsl(math.Mod(p.Hue, 360), p.Saturation, p.Lightness).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(p.Alpha) * 255))}
}

// RGBA implements color.Color.
func (p Paint) RGBA() (r, g, b, a uint32) {
	return p.NRGBA().RGBA()
}

func pointPaint(hue, opacity float64) Paint {
	return Paint{
		Hue:        hue,
		Saturation: Saturation,
		Lightness:  Lightness,
		Alpha:      math.Min(PointAlphaMax, opacity+PointAlphaBoost),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
