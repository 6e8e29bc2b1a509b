// Package theme derives display colours from the timer phase.
package theme

import (
	"fmt"
	"image/color"

	"tomato/internal/core/roundtimer"
)

var (
	// Green backs a running round.
	Green = color.NRGBA{R: 64, G: 145, B: 108, A: 255}
	// Red backs every other phase.
	Red = color.NRGBA{R: 158, G: 42, B: 43, A: 255}
)

// ColorFor returns the panel colour for a phase state.
func ColorFor(state roundtimer.State) color.NRGBA {
	if state == roundtimer.StateRunning {
		return Green
	}
	return Red
}

// Hex renders a colour as #rrggbb for terminal styling.
func Hex(value color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", value.R, value.G, value.B)
}
