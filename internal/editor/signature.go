package editor

import (
	"fmt"

	"go-pdfeditor/internal/geometry"
	"go-pdfeditor/internal/overlay"
	"go-pdfeditor/internal/render"
)

// PointerAction is one pointer event kind.
type PointerAction string

const (
	PointerDown PointerAction = "down"
	PointerMove PointerAction = "move"
	PointerUp   PointerAction = "up"
)

// PageCount returns the number of pages of the source document, or the
// number of staged images for scan sessions.
func (s *Session) PageCount() int {
	if s.Kind == KindScan {
		return len(s.staged)
	}
	if s.doc == nil {
		return 0
	}
	return s.doc.PageCount()
}

// CurrentPage returns the page shown by a signature session.
func (s *Session) CurrentPage() int {
	return s.page
}

// Measure fits the current page into a column containerWidth pixels wide.
// The first successful measurement is cached for the rest of the session
// and later calls return it unchanged.
func (s *Session) Measure(containerWidth float64) (render.Surface, error) {
	if err := s.check(KindSignature); err != nil {
		return render.Surface{}, err
	}
	if s.surface != nil {
		return *s.surface, nil
	}
	if containerWidth <= 0 {
		return render.Surface{}, precondition("container width must be positive")
	}
	native, err := s.doc.PageSize(s.page)
	if err != nil {
		return render.Surface{}, err
	}
	if native.IsZero() {
		return render.Surface{}, &CollaboratorError{Op: "measure page", Err: fmt.Errorf("page %d has no size", s.page)}
	}
	vp := geometry.FitWidth(native, containerWidth)
	surface, err := s.renderer.Render(s.doc, s.page, vp.Scale())
	if err != nil {
		return render.Surface{}, &CollaboratorError{Op: "render page", Err: err}
	}
	s.surface = &surface
	s.overlay.SetSurface(surface.Size)
	s.overlay.Fit()
	return surface, nil
}

// Surface returns the cached measurement, if any.
func (s *Session) Surface() (render.Surface, bool) {
	if s.surface == nil {
		return render.Surface{}, false
	}
	return *s.surface, true
}

// SetPage selects the page the signature goes on.
func (s *Session) SetPage(n int) error {
	if err := s.check(KindSignature); err != nil {
		return err
	}
	if n < 1 || n > s.doc.PageCount() {
		return precondition("page %d is outside 1-%d", n, s.doc.PageCount())
	}
	s.page = n
	return nil
}

// Navigate moves the current page by delta, stopping at the first and last
// page. It returns the new page.
func (s *Session) Navigate(delta int) (int, error) {
	if err := s.check(KindSignature); err != nil {
		return 0, err
	}
	n := s.page + delta
	if n < 1 {
		n = 1
	}
	if n > s.doc.PageCount() {
		n = s.doc.PageCount()
	}
	s.page = n
	return n, nil
}

// Pointer feeds one pointer event to the overlay and reports whether it
// changed the interaction or the overlay. Rejected moves are not errors.
func (s *Session) Pointer(action PointerAction, target overlay.Target, p overlay.Point) (bool, error) {
	if err := s.check(KindSignature); err != nil {
		return false, err
	}
	switch action {
	case PointerDown:
		return s.overlay.PointerDown(target, p), nil
	case PointerMove:
		return s.overlay.PointerMove(p), nil
	case PointerUp:
		s.overlay.PointerUp()
		return true, nil
	}
	return false, fmt.Errorf("unknown pointer action %q", action)
}

// Overlay exposes the overlay of a signature session.
func (s *Session) Overlay() (*overlay.Overlay, error) {
	if err := s.check(KindSignature); err != nil {
		return nil, err
	}
	return s.overlay, nil
}

// PlaceOverlay sets the overlay rectangle in surface pixels, for keyboard
// entry or a restored placement.
func (s *Session) PlaceOverlay(r geometry.Rect) error {
	if err := s.check(KindSignature); err != nil {
		return err
	}
	if s.surface == nil {
		return precondition("the page is not ready yet")
	}
	if !s.overlay.Place(r) {
		return precondition("the signature must lie inside the page")
	}
	return nil
}

func (s *Session) commitSignature() (Payload, error) {
	if s.surface == nil {
		return nil, precondition("the page is not ready yet")
	}
	s.overlay.PointerUp()
	placement, err := s.surface.Viewport().ToDocument(s.overlay.Rect())
	if err != nil {
		return nil, precondition("the page is not ready yet")
	}
	return SignaturePayload{
		SourcePage: s.page,
		X:          placement.X,
		Y:          placement.Y,
		Width:      placement.Width,
		Height:     placement.Height,
	}, nil
}

func (s *Session) check(kinds ...Kind) error {
	if s.closed {
		return ErrClosed
	}
	for _, k := range kinds {
		if s.Kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongKind, s.Kind)
}
