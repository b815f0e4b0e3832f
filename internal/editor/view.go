package editor

import (
	"go-pdfeditor/internal/geometry"
	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/scan"
)

// View is the client-facing snapshot of a session.
type View struct {
	ID              string `json:"id"`
	Kind            Kind   `json:"kind"`
	Closed          bool   `json:"closed"`
	PageCount       int    `json:"pageCount"`
	DocumentPreview string `json:"documentPreview,omitempty"`

	CurrentPage int             `json:"currentPage,omitempty"`
	Surface     *render.Surface `json:"surface,omitempty"`
	Overlay     *OverlayView    `json:"overlay,omitempty"`

	Pages []pages.Page `json:"pages,omitempty"`

	Images       []StagedImage     `json:"images,omitempty"`
	Effect       scan.Effect       `json:"effect,omitempty"`
	Effects      []scan.Effect     `json:"effects,omitempty"`
	OutputFormat scan.OutputFormat `json:"outputFormat,omitempty"`
}

// OverlayView describes the overlay of a signature session.
type OverlayView struct {
	Rect    geometry.Rect `json:"rect"`
	Aspect  float64       `json:"aspectRatio"`
	Mode    string        `json:"interaction"`
	Preview string        `json:"preview"`
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	v := View{
		ID:              s.ID,
		Kind:            s.Kind,
		Closed:          s.closed,
		PageCount:       s.PageCount(),
		DocumentPreview: s.docPreview,
	}
	if s.closed {
		v.DocumentPreview = ""
		return v
	}
	switch s.Kind {
	case KindSignature:
		v.CurrentPage = s.page
		if s.surface != nil {
			surface := *s.surface
			v.Surface = &surface
		}
		v.Overlay = &OverlayView{
			Rect:    s.overlay.Rect(),
			Aspect:  s.overlay.Aspect(),
			Mode:    s.overlay.Mode().String(),
			Preview: s.overlayPreview,
		}
	case KindArrange, KindExtract:
		v.Pages = s.pages.Pages()
	case KindScan:
		v.Images = make([]StagedImage, len(s.staged))
		copy(v.Images, s.staged)
		v.Effect = s.effect
		v.Effects = scan.Effects
		v.OutputFormat = s.format
	}
	return v
}
