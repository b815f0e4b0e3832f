// Package render loads source documents and measures page surfaces.
//
// A Document is the immutable handle editors work against: the page count
// and each page's native size in points. Rasterization is left to the
// browser client; the service only needs geometry.
package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"go-pdfeditor/internal/geometry"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	_ "golang.org/x/image/webp"
)

var ErrPageOutOfRange = errors.New("page out of range")

// Document is a loaded source file.
type Document struct {
	Path string
	dims []geometry.Size
}

// NewDocument builds a handle from known page sizes.
func NewDocument(path string, dims []geometry.Size) *Document {
	d := make([]geometry.Size, len(dims))
	copy(d, dims)
	return &Document{Path: path, dims: d}
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.dims)
}

// PageSize returns the native size of the 1-based page n.
func (d *Document) PageSize(n int) (geometry.Size, error) {
	if n < 1 || n > len(d.dims) {
		return geometry.Size{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, n, len(d.dims))
	}
	return d.dims[n-1], nil
}

// Surface describes one page rendered at a scale.
type Surface struct {
	Page   int           `json:"page"`
	Scale  float64       `json:"scale"`
	Size   geometry.Size `json:"size"`
	Native geometry.Size `json:"native"`
}

// Viewport returns the surface as a transform viewport.
func (s Surface) Viewport() geometry.Viewport {
	return geometry.Viewport{Render: s.Size, Native: s.Native}
}

// Renderer is the rendering collaborator.
type Renderer interface {
	Open(path string) (*Document, error)
	Render(doc *Document, page int, scale float64) (Surface, error)
}

// PDFRenderer reads page geometry with pdfcpu.
type PDFRenderer struct{}

func (PDFRenderer) Open(path string) (*Document, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("document %s has no pages", path)
	}
	sizes := make([]geometry.Size, len(dims))
	for i, d := range dims {
		sizes[i] = geometry.Size{Width: d.Width, Height: d.Height}
	}
	return &Document{Path: path, dims: sizes}, nil
}

func (PDFRenderer) Render(doc *Document, page int, scale float64) (Surface, error) {
	return RenderPage(doc, page, scale)
}

// RenderPage computes the surface for a page of a loaded document.
func RenderPage(doc *Document, page int, scale float64) (Surface, error) {
	native, err := doc.PageSize(page)
	if err != nil {
		return Surface{}, err
	}
	if scale <= 0 {
		return Surface{}, fmt.Errorf("invalid scale %v", scale)
	}
	return Surface{
		Page:   page,
		Scale:  scale,
		Size:   native.Scale(scale),
		Native: native,
	}, nil
}

// ImageSize returns the intrinsic pixel size of a PNG, JPEG or WebP file.
func ImageSize(path string) (geometry.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return geometry.Size{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return geometry.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
