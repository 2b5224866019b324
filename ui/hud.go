package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Particles  int
	Links      int
	Frames     uint64
	FPS        int32
	Running    bool
	Link       bool
	Broadphase string
	Width      float64
	Height     float64
	Ratio      float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	linkText := "off"
	if data.Link {
		linkText = fmt.Sprintf("%d (%s)", data.Links, data.Broadphase)
	}
	rl.DrawText(
		fmt.Sprintf("Particles: %d | Links: %s", data.Particles, linkText),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d | %.0fx%.0f @%.2gx", data.Frames, data.FPS, data.Width, data.Height, data.Ratio),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if !data.Running {
		statusText = "STOPPED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.MutedColor)
}

// PerfPanel renders the frame timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the drawn panel height.
func (p *PerfPanel) Height() int32 {
	return p.renderer.Theme.Padding*2 + p.renderer.Theme.LineHeight*int32(3+len(telemetry.Phases)) + 12
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x := p.x + pad
	y := p.y + pad
	y = r.DrawSectionHeader(x, y, "Frame timing")
	y = r.DrawLabelValue(x, y, "avg", stats.AvgFrame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "p95", stats.P95Frame.Round(time.Microsecond).String())

	for _, phase := range telemetry.Phases {
		y = r.DrawBar(x, y, phase, stats.PhasePct[phase]/100, p.width-pad*2)
	}
}
