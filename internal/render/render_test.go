package render

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go-pdfeditor/internal/geometry"

	"github.com/google/go-cmp/cmp"
)

func TestRenderPage(t *testing.T) {
	doc := NewDocument("doc.pdf", []geometry.Size{{Width: 200, Height: 300}, {Width: 300, Height: 200}})
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d", doc.PageCount())
	}

	s, err := RenderPage(doc, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	want := Surface{Page: 2, Scale: 0.5, Size: geometry.Size{Width: 150, Height: 100}, Native: geometry.Size{Width: 300, Height: 200}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("surface mismatch (-want +got):\n%s", diff)
	}

	if _, err := RenderPage(doc, 3, 1); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("page 3: err = %v", err)
	}
	if _, err := RenderPage(doc, 0, 1); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("page 0: err = %v", err)
	}
	if _, err := RenderPage(doc, 1, 0); err == nil {
		t.Error("zero scale accepted")
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImageSize(t *testing.T) {
	path := writePNG(t, 64, 24)
	got, err := ImageSize(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(geometry.Size{Width: 64, Height: 24}, got); diff != "" {
		t.Errorf("size mismatch (-want +got):\n%s", diff)
	}

	notImage := filepath.Join(t.TempDir(), "x.png")
	if err := os.WriteFile(notImage, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImageSize(notImage); err == nil {
		t.Error("ImageSize accepted a non-image")
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
	th := Thumbnail(img, 200)
	if b := th.Bounds(); b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("thumbnail bounds = %v", b)
	}
	if Thumbnail(img, 800) != image.Image(img) {
		t.Error("small image was rescaled")
	}
}
