// Package colors turns CSS color strings into color.Color values for the
// non-browser previews.
package colors

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Fallback paints placements whose color is unset or not understood.
var Fallback color.Color = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

// Parse understands CSS named colors, #rgb, #rrggbb and "transparent".
// Functional notations (rgb(), hsl()) are not supported.
func Parse(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil, false
	case s == "transparent":
		return color.Transparent, true
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, false
		}
		return c, true
	}
	c, ok := colornames.Map[s]
	if !ok {
		return nil, false
	}
	return c, true
}

// OrFallback is Parse with Fallback for anything it cannot read.
func OrFallback(s string) color.Color {
	if c, ok := Parse(s); ok {
		return c
	}
	return Fallback
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// fully transparent
		return "#000000"
	}
	return cf.Hex()
}
