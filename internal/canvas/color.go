package canvas

import "fmt"

// ParseHex parses a "#rrggbb" color string into an opaque RGBA.
func ParseHex(s string) (RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromRGB(r, g, b), nil
}

// Hex returns the color as a "#rrggbb" string, dropping alpha.
func (c RGBA) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
