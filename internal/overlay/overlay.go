// Package overlay tracks pointer-driven move and resize of a rectangular
// overlay that must stay inside its page surface.
package overlay

import (
	"go-pdfeditor/internal/geometry"
)

// MinWidth is the smallest width a resize can produce, in pixels.
const MinWidth = 50.0

const (
	defaultX     = 20.0
	defaultY     = 20.0
	defaultWidth = 160.0
	// used when the asset reports no usable dimensions
	defaultAspect = 110.0 / 160.0
)

// Mode is the interaction state.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "none"
	}
}

// Target is the part of the overlay a pointer-down landed on.
type Target int

const (
	Body Target = iota
	Handle
)

// ParseTarget maps "body" and "handle" to targets.
func ParseTarget(s string) (Target, bool) {
	switch s {
	case "body", "":
		return Body, true
	case "handle", "resize":
		return Handle, true
	}
	return Body, false
}

// Point is a pointer position in page-surface pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Capture is held for the duration of one interaction. Touch, if set, is
// called on every accepted move. Release is called exactly once when the
// interaction ends.
type Capture struct {
	Touch   func()
	Release func()
}

// CaptureFunc is called when an interaction starts.
type CaptureFunc func() Capture

// Overlay is the draggable, aspect-locked, resizable rectangle.
// It is not safe for concurrent use.
type Overlay struct {
	rect    geometry.Rect
	aspect  float64
	surface geometry.Size

	mode      Mode
	offset    Point
	start     Point
	startSize geometry.Size

	capture CaptureFunc
	held    Capture
}

// New returns an idle overlay whose aspect ratio is fixed from the asset's
// intrinsic size.
func New(asset geometry.Size) *Overlay {
	aspect := defaultAspect
	if !asset.IsZero() {
		aspect = asset.Height / asset.Width
	}
	return &Overlay{
		rect: geometry.Rect{
			X:      defaultX,
			Y:      defaultY,
			Width:  defaultWidth,
			Height: defaultWidth * aspect,
		},
		aspect: aspect,
	}
}

// SetCapture installs the hook run on every idle -> dragging/resizing
// transition.
func (o *Overlay) SetCapture(fn CaptureFunc) {
	o.capture = fn
}

// SetSurface records the measured page surface the overlay is confined to.
func (o *Overlay) SetSurface(s geometry.Size) {
	o.surface = s
}

// Surface returns the page surface size.
func (o *Overlay) Surface() geometry.Size {
	return o.surface
}

// Rect returns the overlay rectangle in pixel space.
func (o *Overlay) Rect() geometry.Rect {
	return o.rect
}

// Aspect returns height/width.
func (o *Overlay) Aspect() float64 {
	return o.aspect
}

// Mode returns the current interaction state.
func (o *Overlay) Mode() Mode {
	return o.mode
}

// PointerDown starts a drag or resize. It is ignored unless the overlay is
// idle and the surface has been measured.
func (o *Overlay) PointerDown(t Target, p Point) bool {
	if o.mode != Idle || o.surface.IsZero() {
		return false
	}
	switch t {
	case Handle:
		o.mode = Resizing
		o.start = p
		o.startSize = geometry.Size{Width: o.rect.Width, Height: o.rect.Height}
	default:
		o.mode = Dragging
		o.offset = Point{X: p.X - o.rect.X, Y: p.Y - o.rect.Y}
	}
	if o.capture != nil {
		o.held = o.capture()
	}
	return true
}

// PointerMove applies a move for the active interaction and reports whether
// the overlay changed.
func (o *Overlay) PointerMove(p Point) bool {
	switch o.mode {
	case Dragging:
		size := geometry.Size{Width: o.rect.Width, Height: o.rect.Height}
		pos := ClampPosition(Point{X: p.X - o.offset.X, Y: p.Y - o.offset.Y}, size, o.surface)
		o.rect.X, o.rect.Y = pos.X, pos.Y
		o.touch()
		return true
	case Resizing:
		w := o.startSize.Width + (p.X - o.start.X)
		if w < MinWidth {
			w = MinWidth
		}
		if maxW := o.surface.Width - o.rect.X; w > maxW {
			w = maxW
		}
		h := w * o.aspect
		// Too narrow after clamping, or past the bottom edge: keep the last size.
		if w < MinWidth || o.rect.Y+h > o.surface.Height {
			return false
		}
		o.rect.Width, o.rect.Height = w, h
		o.touch()
		return true
	}
	return false
}

func (o *Overlay) touch() {
	if o.held.Touch != nil {
		o.held.Touch()
	}
}

// PointerUp ends any interaction. It is safe to call in any state.
func (o *Overlay) PointerUp() {
	if o.mode == Idle {
		return
	}
	o.mode = Idle
	release := o.held.Release
	o.held = Capture{}
	if release != nil {
		release()
	}
}

// ClampPosition keeps a rectangle of the given size inside the surface by
// clamping each axis of pos to [0, extent-size].
func ClampPosition(pos Point, size, surface geometry.Size) Point {
	return Point{
		X: geometry.Clamp(pos.X, 0, surface.Width-size.Width),
		Y: geometry.Clamp(pos.Y, 0, surface.Height-size.Height),
	}
}

// Fit shrinks and moves the overlay so that it lies inside the surface,
// keeping the aspect ratio. It is used after the surface is first measured.
func (o *Overlay) Fit() {
	if o.surface.IsZero() {
		return
	}
	if o.rect.Width > o.surface.Width {
		o.rect.Width = o.surface.Width
		o.rect.Height = o.rect.Width * o.aspect
	}
	if o.rect.Height > o.surface.Height {
		o.rect.Height = o.surface.Height
		o.rect.Width = o.rect.Height / o.aspect
	}
	pos := ClampPosition(Point{X: o.rect.X, Y: o.rect.Y},
		geometry.Size{Width: o.rect.Width, Height: o.rect.Height}, o.surface)
	o.rect.X, o.rect.Y = pos.X, pos.Y
}

// Place sets the overlay rectangle directly while idle. The height is
// recomputed from the width. A rectangle that does not lie inside the
// surface is rejected.
func (o *Overlay) Place(r geometry.Rect) bool {
	if o.mode != Idle || o.surface.IsZero() || r.Width <= 0 {
		return false
	}
	r.Height = r.Width * o.aspect
	if r.X < 0 || r.Y < 0 || r.X+r.Width > o.surface.Width || r.Y+r.Height > o.surface.Height {
		return false
	}
	o.rect = r
	return true
}
