package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/field"
)

// Slider ranges for the tuning panel.
const (
	minBaseCount   = 20
	maxBaseCount   = 600
	opacityStep    = 0.05
	tuningPanelH   = 190
	tuningSliderH  = 20
	tuningCheckBox = 18
)

// TuningPanel exposes the field options as raygui controls.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// Draw renders the panel and returns the options after user edits.
// changed reports whether any option differs from opts.
func (t *TuningPanel) Draw(opts field.Options) (next field.Options, changed bool) {
	next = opts
	if !t.visible {
		return next, false
	}

	r := t.renderer
	pad := r.Theme.Padding
	r.DrawPanel(t.x, t.y, t.width, tuningPanelH)

	x := t.x + pad
	y := t.y + pad
	y = r.DrawSectionHeader(x, y, "Field")

	sliderW := float32(t.width - pad*2 - 60)

	rl.DrawText("Base count", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	countIn := clampf(float32(opts.BaseCount), minBaseCount, maxBaseCount)
	count := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: sliderW, Height: tuningSliderH},
		"", "",
		countIn, minBaseCount, maxBaseCount,
	)
	rl.DrawText(fmt.Sprintf("%d", opts.BaseCount), x+int32(sliderW)+8, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	if count != countIn {
		next.BaseCount = int(math.Round(float64(count)))
	}
	y += tuningSliderH + 8

	rl.DrawText("Opacity", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	opacityIn := clampf(float32(opts.Opacity), 0, 1)
	opacity := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: sliderW, Height: tuningSliderH},
		"", "",
		opacityIn, 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.2f", opts.Opacity), x+int32(sliderW)+8, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	if opacity != opacityIn {
		next.Opacity = quantize(float64(opacity), opacityStep)
	}
	y += tuningSliderH + 10

	next.Link = gui.CheckBox(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: tuningCheckBox, Height: tuningCheckBox},
		"Link neighbours", opts.Link,
	)
	y += tuningCheckBox + 8

	grid := gui.CheckBox(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: tuningCheckBox, Height: tuningCheckBox},
		"Grid broad phase", opts.Broadphase == field.BroadphaseGrid,
	)
	next.Broadphase = field.BroadphasePairwise
	if grid {
		next.Broadphase = field.BroadphaseGrid
	}

	changed = next.BaseCount != opts.BaseCount ||
		next.Opacity != opts.Opacity ||
		next.Link != opts.Link ||
		next.Broadphase != opts.Broadphase
	return next, changed
}

// Untouched sliders return their input unchanged, so edits are detected by
// comparing against the clamped value passed in.
func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// quantize snaps v to the nearest multiple of step so slider drags
// restart the field only when the value moves a full step.
func quantize(v, step float64) float64 {
	return math.Round(v/step) * step
}
