package render

import (
	"fmt"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight alpha in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// Transparent is the zero-alpha color.
var Transparent = Color{}

// RGB returns an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xff)
}

// RGBA returns a color from 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{
		Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		A:     float64(a) / 255,
	}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	switch len(s) {
	case 7:
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return Color{Color: c, A: 1}, nil
	case 9:
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q alpha: %w", s, err)
		}
		return Color{Color: c, A: float64(a) / 255}, nil
	default:
		return Color{}, fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", s)
	}
}

// MustHex is ParseHex for constants; it panics on malformed input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsFullyTransparent reports whether painting c has no visible effect.
func (c Color) IsFullyTransparent() bool { return c.A <= 0 }

// Linear returns the color in linear RGB with alpha, the form compositors
// blend in.
func (c Color) Linear() (r, g, b, a float64) {
	r, g, b = c.LinearRgb()
	return r, g, b, c.A
}

// String formats c as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) String() string {
	h := c.Hex()
	if c.A >= 1 {
		return h
	}
	return fmt.Sprintf("%s%02x", h, uint8(c.A*255+0.5))
}
