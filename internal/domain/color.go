package domain

import (
	"fmt"
	"image/color"
	"strings"
)

// namedColors covers the color names callers actually send for meme text.
var namedColors = map[string]color.RGBA{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"pink":    {255, 192, 203, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
}

// ParseColor converts a color name or #rrggbb / #rgb hex string to an RGBA value.
// Parameters:
//   - s: color name (case-insensitive) or hex string with leading '#'.
// Returns:
//   - color.RGBA: parsed color, fully opaque.
//   - error: non-nil if the string is neither a known name nor valid hex.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}

	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		var r, g, b uint8
		switch len(hex) {
		case 6:
			if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
				return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
			}
		case 3:
			var r4, g4, b4 uint8
			if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r4, &g4, &b4); err != nil {
				return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
			}
			r, g, b = r4*17, g4*17, b4*17
		default:
			return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}

	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}
