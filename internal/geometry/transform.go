// Package geometry converts overlay rectangles between rendered-pixel space
// and document units.
//
// Pixel space has its origin at the top-left corner of the rendered page
// surface with y growing downwards. Document space has its origin at the
// bottom-left corner of the page with y growing upwards, and an overlay is
// positioned there by its lower edge.
package geometry

import (
	"errors"

	"seehuhn.de/go/geom/matrix"
)

// ErrNotMeasured is returned when a transform is requested before the page
// surface has been measured.
var ErrNotMeasured = errors.New("page surface not measured")

// Size is a width/height pair. Its unit depends on context.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether either extent is zero or negative.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Scale returns s with both extents multiplied by f.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// Rect is an axis-aligned rectangle in pixel space, measured from the
// top-left corner of the page surface.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is a rectangle in document units, positioned by its lower-left
// corner.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport relates a rendered page surface to the page's native size.
type Viewport struct {
	Render Size `json:"render"`
	Native Size `json:"native"`
}

// FitWidth returns the viewport that renders a page of the given native size
// into a column containerWidth pixels wide, scaled uniformly.
func FitWidth(native Size, containerWidth float64) Viewport {
	if native.Width <= 0 || containerWidth <= 0 {
		return Viewport{Native: native}
	}
	return Viewport{
		Render: native.Scale(containerWidth / native.Width),
		Native: native,
	}
}

// Measured reports whether both the rendered and the native sizes are known.
func (v Viewport) Measured() bool {
	return !v.Render.IsZero() && !v.Native.IsZero()
}

// Scale returns renderW / nativeW, or 0 for an unmeasured viewport.
func (v Viewport) Scale() float64 {
	if !v.Measured() {
		return 0
	}
	return v.Render.Width / v.Native.Width
}

// pixelToDocument maps a pixel point to document units, flipping the
// vertical axis.
func (v Viewport) pixelToDocument() matrix.Matrix {
	kx := v.Native.Width / v.Render.Width
	ky := v.Native.Height / v.Render.Height
	return matrix.Matrix{kx, 0, 0, -ky, 0, v.Native.Height}
}

func (v Viewport) documentToPixel() matrix.Matrix {
	return v.pixelToDocument().Inv()
}

// ToDocument converts a pixel-space rectangle into document units.
// No clamping is performed.
func (v Viewport) ToDocument(r Rect) (Placement, error) {
	if !v.Measured() {
		return Placement{}, ErrNotMeasured
	}
	m := v.pixelToDocument()
	// The lower-left corner in pixel space is (x, y+height).
	x, y := m.Apply(r.X, r.Y+r.Height)
	return Placement{
		X:      x,
		Y:      y,
		Width:  r.Width / v.Render.Width * v.Native.Width,
		Height: r.Height / v.Render.Height * v.Native.Height,
	}, nil
}

// ToPixels is the inverse of ToDocument.
func (v Viewport) ToPixels(p Placement) (Rect, error) {
	if !v.Measured() {
		return Rect{}, ErrNotMeasured
	}
	m := v.documentToPixel()
	x, y := m.Apply(p.X, p.Y+p.Height)
	return Rect{
		X:      x,
		Y:      y,
		Width:  p.Width / v.Native.Width * v.Render.Width,
		Height: p.Height / v.Native.Height * v.Render.Height,
	}, nil
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
