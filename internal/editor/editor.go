// Package editor implements the interactive editor sessions: signature
// placement, page arrangement, page extraction and scan staging.
//
// A Session is a tagged union over Kind. Each kind instantiates only the
// sub-objects it needs (an overlay, a page collection or a staged image
// list) and produces its own Payload on Commit. A session is mutated only by
// explicit commands and is not safe for concurrent use; the coordinator
// serializes access.
package editor

import (
	"fmt"
	"mime"
	"path/filepath"

	"go-pdfeditor/internal/overlay"
	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/preview"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/scan"

	"github.com/google/uuid"
)

// Kind selects the editor workflow.
type Kind string

const (
	KindSignature Kind = "add-signature"
	KindArrange   Kind = "arrange-pages"
	KindExtract   Kind = "split"
	KindScan      Kind = "scan"
)

// ParseKind accepts the workflow wire names.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSignature, KindArrange, KindExtract, KindScan:
		return k, nil
	}
	return "", fmt.Errorf("unknown editor kind %q", s)
}

// Source names the local files a session is opened with.
type Source struct {
	Document string   `json:"document,omitempty"`
	Overlay  string   `json:"overlay,omitempty"`
	Images   []string `json:"images,omitempty"`
}

func (src Source) validate(k Kind) error {
	switch k {
	case KindSignature:
		if src.Document == "" || src.Overlay == "" {
			return precondition("a PDF and a signature image are required")
		}
	case KindArrange, KindExtract:
		if src.Document == "" {
			return precondition("a PDF file is required")
		}
	case KindScan:
		if len(src.Images) == 0 {
			return precondition("at least one image is required")
		}
	default:
		return fmt.Errorf("unknown editor kind %q", k)
	}
	return nil
}

// Options tunes a session.
type Options struct {
	// Capture is run when an overlay interaction starts; see overlay.CaptureFunc.
	Capture overlay.CaptureFunc
	// ThumbnailWidth bounds generated image previews. Zero means 240.
	ThumbnailWidth int
}

// StagedImage is one image in a scan staging session.
type StagedImage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Preview string `json:"preview"`
	Path    string `json:"-"`
}

// Session is one open editor.
type Session struct {
	ID   string
	Kind Kind

	renderer render.Renderer
	previews *preview.Registry
	opts     Options
	src      Source
	closed   bool

	doc        *render.Document
	docPreview string

	// add-signature
	overlay        *overlay.Overlay
	overlayPreview string
	page           int
	surface        *render.Surface

	// arrange-pages, split
	pages *pages.Collection

	// scan
	staged []StagedImage
	effect scan.Effect
	format scan.OutputFormat
}

// Open starts a session of the given kind. On error nothing stays
// registered in previews.
func Open(id string, k Kind, src Source, r render.Renderer, previews *preview.Registry, opts Options) (*Session, error) {
	if err := src.validate(k); err != nil {
		return nil, err
	}
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = 240
	}
	s := &Session{
		ID:       id,
		Kind:     k,
		renderer: r,
		previews: previews,
		opts:     opts,
		effect:   scan.DefaultEffect,
		format:   scan.DefaultFormat,
	}
	if err := s.load(src); err != nil {
		previews.ReleaseAll()
		return nil, err
	}
	return s, nil
}

// load (re)builds every source-derived sub-object. The caller releases
// previews on failure.
func (s *Session) load(src Source) error {
	s.src = src
	s.doc, s.docPreview = nil, ""
	s.overlay, s.overlayPreview = nil, ""
	s.surface = nil
	s.pages = nil
	s.staged = nil
	s.page = 1

	if src.Document != "" && s.Kind != KindScan {
		doc, err := s.renderer.Open(src.Document)
		if err != nil {
			return &CollaboratorError{Op: "load document", Err: err}
		}
		s.doc = doc
		s.docPreview = s.previews.Register(src.Document, "application/pdf")
	}

	switch s.Kind {
	case KindSignature:
		asset, err := render.ImageSize(src.Overlay)
		if err != nil {
			return &CollaboratorError{Op: "load signature image", Err: err}
		}
		s.overlay = overlay.New(asset)
		s.overlay.SetCapture(s.opts.Capture)
		s.overlayPreview = s.previews.Register(src.Overlay, contentType(src.Overlay))
	case KindArrange, KindExtract:
		s.pages = pages.New(s.doc.PageCount())
	case KindScan:
		for _, path := range src.Images {
			img, err := render.LoadImage(path)
			if err != nil {
				return &CollaboratorError{Op: "load image", Err: err}
			}
			token, err := s.previews.Store(render.Thumbnail(img, s.opts.ThumbnailWidth))
			if err != nil {
				return &CollaboratorError{Op: "store preview", Err: err}
			}
			s.staged = append(s.staged, StagedImage{
				ID:      uuid.NewString(),
				Name:    filepath.Base(path),
				Preview: token,
				Path:    path,
			})
		}
	}
	return nil
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Source returns the files the session currently works on.
func (s *Session) Source() Source {
	return s.src
}

// Closed reports whether the session ended.
func (s *Session) Closed() bool {
	return s.closed
}

// ReplaceSource swaps the source files mid-flow. All local edits and
// previews are discarded. If the new source cannot be loaded the session
// closes.
func (s *Session) ReplaceSource(src Source) error {
	if s.closed {
		return ErrClosed
	}
	if err := src.validate(s.Kind); err != nil {
		return err
	}
	s.endInteraction()
	s.previews.ReleaseAll()
	if err := s.load(src); err != nil {
		s.close()
		return err
	}
	return nil
}

// Cancel discards all local state.
func (s *Session) Cancel() error {
	if s.closed {
		return ErrClosed
	}
	s.close()
	return nil
}

// Commit validates the session and returns its payload. A
// *PreconditionError leaves the session open; success closes it.
func (s *Session) Commit() (Payload, error) {
	if s.closed {
		return nil, ErrClosed
	}
	var (
		p   Payload
		err error
	)
	switch s.Kind {
	case KindSignature:
		p, err = s.commitSignature()
	case KindArrange:
		p = ArrangePayload{Order: s.pages.Order(), Rotations: s.pages.Rotations()}
	case KindExtract:
		sel := s.pages.Selected()
		if len(sel) == 0 {
			return nil, precondition("select at least one page to extract")
		}
		p = ExtractPayload{Pages: sel}
	case KindScan:
		p, err = s.commitScan()
	}
	if err != nil {
		return nil, err
	}
	s.close()
	return p, nil
}

func (s *Session) close() {
	s.endInteraction()
	s.previews.ReleaseAll()
	s.closed = true
}

func (s *Session) endInteraction() {
	if s.overlay != nil {
		s.overlay.PointerUp()
	}
}

// Preview resolves a preview token issued by this session.
func (s *Session) Preview(token string) (preview.Item, error) {
	if s.closed {
		return preview.Item{}, ErrClosed
	}
	return s.previews.Lookup(token)
}
