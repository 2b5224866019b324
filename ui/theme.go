// Package ui draws the raylib overlays for the particle field: the status
// HUD, the frame timing panel and the tuning panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	MutedColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillWarn    rl.Color
	BarFillHot     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 14, G: 17, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 96, A: 255},
		SectionHeader:  rl.Color{R: 196, G: 170, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		MutedColor:     rl.Gray,
		BarBg:          rl.Color{R: 40, G: 40, B: 52, A: 255},
		BarFill:        rl.Color{R: 110, G: 140, B: 230, A: 255},
		BarFillWarn:    rl.Color{R: 220, G: 180, B: 100, A: 255},
		BarFillHot:     rl.Color{R: 220, G: 100, B: 100, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
