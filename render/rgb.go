// Package render draws engine state to a tcell screen, redrawing only dirty chunks
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack    = RGB{0, 0, 0}
	RGBFloor    = RGB{38, 38, 44}
	RGBWall     = RGB{120, 120, 130}
	RGBFaceWall = RGB{90, 80, 70}
	RGBPit      = RGB{10, 10, 16}
	RGBFire     = RGB{255, 110, 20}
	RGBFrozen   = RGB{170, 220, 255}
	RGBCharge   = RGB{250, 250, 120}
	RGBStatus   = RGB{0, 255, 255}
)

// ParseHex reads "#rrggbb" or "rrggbb"
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var c RGB
	if len(s) != 6 {
		return c, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// clamp converts float to uint8 with rounding
func clamp(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Lerp blends a toward b, t in [0,1]
func Lerp(a, b RGB, t float64) RGB {
	t = min(max(t, 0), 1)
	return RGB{
		R: clamp(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clamp(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clamp(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// Scale multiplies every channel by f
func Scale(c RGB, f float64) RGB {
	return RGB{R: clamp(float64(c.R) * f), G: clamp(float64(c.G) * f), B: clamp(float64(c.B) * f)}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
