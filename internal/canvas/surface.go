// Package canvas implements the drawing surface: pixel buffers, tool state
// and the double-buffered rasterization engine that composites brush and
// eraser stamps.
package canvas

import (
	"image"
	"image/color"
)

// RGBA is a non-premultiplied color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = RGBA{0, 0, 0, 0}
	Black       = RGBA{0, 0, 0, 1}
	White       = RGBA{1, 1, 1, 1}
)

// FromRGB builds an opaque color from 8-bit channel values.
func FromRGB(r, g, b uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}
}

// NRGBA returns the color as an 8-bit non-premultiplied color.NRGBA.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Point is a position in surface-pixel space.
type Point struct {
	X, Y float64
}

// Surface is a rectangular pixel buffer in non-premultiplied RGBA format,
// 4 bytes per pixel. It stands in for one render target of the front/back
// pair.
type Surface struct {
	width  int
	height int
	data   []uint8
}

// NewSurface creates a surface of the given dimensions, initially fully
// transparent.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	return s.height
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are
// ignored.
func (s *Surface) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.data[i+0] = uint8(clamp01(c.R)*255 + 0.5)
	s.data[i+1] = uint8(clamp01(c.G)*255 + 0.5)
	s.data[i+2] = uint8(clamp01(c.B)*255 + 0.5)
	s.data[i+3] = uint8(clamp01(c.A)*255 + 0.5)
}

// Pixel returns the color of a single pixel. Out-of-bounds reads return
// Transparent.
func (s *Surface) Pixel(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Transparent
	}
	i := (y*s.width + x) * 4
	return RGBA{
		R: float64(s.data[i+0]) / 255,
		G: float64(s.data[i+1]) / 255,
		B: float64(s.data[i+2]) / 255,
		A: float64(s.data[i+3]) / 255,
	}
}

// Fill sets every pixel to the given color.
func (s *Surface) Fill(c RGBA) {
	r := uint8(clamp01(c.R)*255 + 0.5)
	g := uint8(clamp01(c.G)*255 + 0.5)
	b := uint8(clamp01(c.B)*255 + 0.5)
	a := uint8(clamp01(c.A)*255 + 0.5)

	for i := 0; i < len(s.data); i += 4 {
		s.data[i+0] = r
		s.data[i+1] = g
		s.data[i+2] = b
		s.data[i+3] = a
	}
}

// CopyFrom overwrites this surface with the contents of src. The two
// surfaces must be the same size; mismatched sizes copy the top-left
// overlapping region only.
func (s *Surface) CopyFrom(src *Surface) {
	if s.width == src.width && s.height == src.height {
		copy(s.data, src.data)
		return
	}

	w := s.width
	if src.width < w {
		w = src.width
	}
	h := s.height
	if src.height < h {
		h = src.height
	}
	for y := 0; y < h; y++ {
		dstRow := y * s.width * 4
		srcRow := y * src.width * 4
		copy(s.data[dstRow:dstRow+w*4], src.data[srcRow:srcRow+w*4])
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	c := NewSurface(s.width, s.height)
	copy(c.data, s.data)
	return c
}

// Equal reports whether two surfaces have identical dimensions and pixel
// content.
func (s *Surface) Equal(other *Surface) bool {
	if s.width != other.width || s.height != other.height {
		return false
	}
	for i := range s.data {
		if s.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// ToImage converts the surface to an image.NRGBA.
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.data)
	return img
}
