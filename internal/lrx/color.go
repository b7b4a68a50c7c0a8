package lrx

import (
	"fmt"
	"math"
	"strconv"
)

// Color is an opaque 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	// White is the default foreground color of a Part.
	White = Color{R: 255, G: 255, B: 255}

	// Black is used as the blend target when no background is known.
	Black = Color{}
)

// ParseColor parses a color in the form #RRGGBB. Hex digits are case
// insensitive. Any other form, including #RGB and a missing '#', is rejected
// with ErrInvalidColor.
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("%w: %q, expected #RRGGBB", ErrInvalidColor, s)
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(s[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		rgb[i] = uint8(v)
	}

	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// Hex formats the color as #RRGGBB with uppercase digits.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Blend mixes c over bg with the given alpha in [0, 1]. An alpha of 1 returns
// c unchanged, 0 returns bg. Terminals have no per-glyph opacity, so dimmed
// lyric lines are drawn with the blended color instead.
func (c Color) Blend(bg Color, alpha float64) Color {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 || math.IsNaN(alpha) {
		return bg
	}

	mix := func(fg, bg uint8) uint8 {
		return uint8(math.Round(float64(fg)*alpha + float64(bg)*(1-alpha)))
	}
	return Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B)}
}
