package editor

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go-pdfeditor/internal/geometry"
	"go-pdfeditor/internal/overlay"
	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/preview"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/scan"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type fakeRenderer struct {
	docs    map[string][]geometry.Size
	renders int
}

func (f *fakeRenderer) Open(path string) (*render.Document, error) {
	dims, ok := f.docs[path]
	if !ok {
		return nil, errors.New("cannot parse document")
	}
	return render.NewDocument(path, dims), nil
}

func (f *fakeRenderer) Render(doc *render.Document, page int, scale float64) (render.Surface, error) {
	f.renders++
	return render.RenderPage(doc, page, scale)
}

func uniform(n int, size geometry.Size) []geometry.Size {
	out := make([]geometry.Size, n)
	for i := range out {
		out[i] = size
	}
	return out
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
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

type fixture struct {
	dir      string
	renderer *fakeRenderer
	previews *preview.Registry
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	return &fixture{
		dir: dir,
		renderer: &fakeRenderer{docs: map[string][]geometry.Size{
			"three.pdf": uniform(3, geometry.Size{Width: 200, Height: 300}),
			"five.pdf":  uniform(5, geometry.Size{Width: 612, Height: 792}),
		}},
		previews: preview.NewRegistry(filepath.Join(dir, "previews")),
	}
}

func (f *fixture) open(t *testing.T, k Kind, src Source, opts Options) *Session {
	t.Helper()
	s, err := Open("ed-1", k, src, f.renderer, f.previews, opts)
	if err != nil {
		t.Fatalf("Open(%s): %v", k, err)
	}
	return s
}

func TestSignatureScenario(t *testing.T) {
	f := newFixture(t)
	sig := writePNG(t, f.dir, "sig.png", 40, 20)
	s := f.open(t, KindSignature, Source{Document: "three.pdf", Overlay: sig}, Options{})

	if _, err := s.Commit(); !IsPrecondition(err) {
		t.Fatalf("Commit before measuring: err = %v, want precondition", err)
	}
	if s.Closed() {
		t.Fatal("rejected commit closed the session")
	}

	surface, err := s.Measure(100)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(geometry.Size{Width: 100, Height: 150}, surface.Size); diff != "" {
		t.Fatalf("surface mismatch (-want +got):\n%s", diff)
	}
	if surface.Scale != 0.5 {
		t.Fatalf("scale = %v, want 0.5", surface.Scale)
	}

	if err := s.PlaceOverlay(geometry.Rect{X: 70, Y: 10, Width: 40}); !IsPrecondition(err) {
		t.Fatalf("placement past the right edge: err = %v", err)
	}
	if err := s.PlaceOverlay(geometry.Rect{X: 10, Y: 10, Width: 40}); err != nil {
		t.Fatal(err)
	}

	p, err := s.Commit()
	if err != nil {
		t.Fatal(err)
	}
	want := SignaturePayload{SourcePage: 1, X: 20, Y: 240, Width: 80, Height: 40}
	if diff := cmp.Diff(want, p, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	if !s.Closed() {
		t.Error("session still open after commit")
	}
	if f.previews.Len() != 0 {
		t.Errorf("%d previews left after commit", f.previews.Len())
	}
}

func TestMeasureCachedOnce(t *testing.T) {
	f := newFixture(t)
	sig := writePNG(t, f.dir, "sig.png", 10, 10)
	s := f.open(t, KindSignature, Source{Document: "three.pdf", Overlay: sig}, Options{})

	if _, err := s.Measure(0); !IsPrecondition(err) {
		t.Fatalf("Measure(0): err = %v", err)
	}
	first, err := s.Measure(100)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetPage(2); err != nil {
		t.Fatal(err)
	}
	second, err := s.Measure(400)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("measurement changed (-first +second):\n%s", diff)
	}
	if f.renderer.renders != 1 {
		t.Errorf("renderer called %d times, want 1", f.renderer.renders)
	}
}

func TestSignaturePages(t *testing.T) {
	f := newFixture(t)
	sig := writePNG(t, f.dir, "sig.png", 10, 10)
	s := f.open(t, KindSignature, Source{Document: "three.pdf", Overlay: sig}, Options{})

	for _, n := range []int{0, 4} {
		if err := s.SetPage(n); !IsPrecondition(err) {
			t.Errorf("SetPage(%d): err = %v", n, err)
		}
	}
	if n, _ := s.Navigate(-1); n != 1 {
		t.Errorf("Navigate(-1) from 1 = %d", n)
	}
	if n, _ := s.Navigate(5); n != 3 {
		t.Errorf("Navigate(5) from 1 = %d", n)
	}
	if _, err := s.Measure(100); err != nil {
		t.Fatal(err)
	}
	p, err := s.Commit()
	if err != nil {
		t.Fatal(err)
	}
	if got := p.(SignaturePayload).SourcePage; got != 3 {
		t.Errorf("SourcePage = %d, want 3", got)
	}
}

func TestSignaturePointer(t *testing.T) {
	f := newFixture(t)
	sig := writePNG(t, f.dir, "sig.png", 20, 10)
	captured, released := 0, 0
	s := f.open(t, KindSignature, Source{Document: "five.pdf", Overlay: sig}, Options{
		Capture: func() overlay.Capture {
			captured++
			return overlay.Capture{Release: func() { released++ }}
		},
	})

	if ok, _ := s.Pointer(PointerDown, overlay.Body, overlay.Point{X: 30, Y: 30}); ok {
		t.Fatal("pointer-down accepted before the page was measured")
	}
	if _, err := s.Measure(612); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Pointer(PointerDown, overlay.Body, overlay.Point{X: 30, Y: 30}); !ok {
		t.Fatal("pointer-down rejected")
	}
	if _, err := s.Pointer(PointerMove, overlay.Body, overlay.Point{X: 110, Y: 130}); err != nil {
		t.Fatal(err)
	}
	if v := s.View(); v.Overlay.Mode != "dragging" || v.Overlay.Rect.X != 100 || v.Overlay.Rect.Y != 120 {
		t.Errorf("overlay view = %+v", v.Overlay)
	}

	// cancelling mid-drag still releases the capture
	if err := s.Cancel(); err != nil {
		t.Fatal(err)
	}
	if captured != 1 || released != 1 {
		t.Errorf("captured %d, released %d", captured, released)
	}
	if _, err := s.Pointer(PointerUp, overlay.Body, overlay.Point{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Pointer after cancel: err = %v", err)
	}
}

func TestArrangeScenario(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, KindArrange, Source{Document: "three.pdf"}, Options{})

	ps, err := s.Pages()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.MoveByID(ps[2].ID, ps[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Rotate(ps[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleSelect(ps[0].ID); !errors.Is(err, ErrWrongKind) {
		t.Errorf("ToggleSelect on arrange: err = %v", err)
	}

	p, err := s.Commit()
	if err != nil {
		t.Fatal(err)
	}
	want := ArrangePayload{Order: []int{3, 1, 2}, Rotations: map[int]int{1: 90, 2: 0, 3: 0}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractScenario(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, KindExtract, Source{Document: "five.pdf"}, Options{})
	ps, _ := s.Pages()

	if _, err := s.Commit(); !IsPrecondition(err) {
		t.Fatalf("empty extraction: err = %v, want precondition", err)
	}
	after, _ := s.Pages()
	if diff := cmp.Diff(ps, after); diff != "" {
		t.Errorf("rejected commit changed the pages:\n%s", diff)
	}
	if f.previews.Len() == 0 {
		t.Error("rejected commit released previews")
	}

	// click order 4 then 2
	_ = s.ToggleSelect(ps[3].ID)
	_ = s.ToggleSelect(ps[1].ID)
	if err := s.Reorder(0, 1); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Reorder on split: err = %v", err)
	}

	p, err := s.Commit()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ExtractPayload{Pages: []int{2, 4}}, p); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestScanStaging(t *testing.T) {
	f := newFixture(t)
	a := writePNG(t, f.dir, "a.png", 600, 800)
	b := writePNG(t, f.dir, "b.png", 30, 40)
	c := writePNG(t, f.dir, "c.png", 30, 40)
	s := f.open(t, KindScan, Source{Images: []string{a, b, c}}, Options{})

	if f.previews.Len() != 3 {
		t.Fatalf("%d previews, want 3", f.previews.Len())
	}
	staged, err := s.Staged()
	if err != nil {
		t.Fatal(err)
	}
	it, err := s.Preview(staged[0].Preview)
	if err != nil {
		t.Fatal(err)
	}
	if sz, err := render.ImageSize(it.Path); err != nil || sz.Width != 240 {
		t.Errorf("thumbnail size = %+v, %v", sz, err)
	}

	if s.Effect() != scan.EffectMonochrome || s.OutputFormat() != scan.FormatPDF {
		t.Errorf("defaults = %q, %q", s.Effect(), s.OutputFormat())
	}
	if diff := cmp.Diff(scan.Effects, s.View().Effects); diff != "" {
		t.Errorf("offered effects mismatch (-want +got):\n%s", diff)
	}
	if err := s.MoveByID(staged[2].ID, staged[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Step(staged[0].ID, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Rotate(staged[0].ID); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Rotate on scan: err = %v", err)
	}
	if err := s.MoveByID("nope", staged[0].ID); !errors.Is(err, pages.ErrUnknownPage) {
		t.Errorf("MoveByID unknown: err = %v", err)
	}
	_ = s.SetEffect(scan.EffectColorBoost)
	_ = s.SetOutputFormat(scan.FormatJPG)

	p, err := s.Commit()
	if err != nil {
		t.Fatal(err)
	}
	want := ScanPayload{Files: []string{c, b, a}, Effect: scan.EffectColorBoost, OutputFormat: scan.FormatJPG}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	if f.previews.Len() != 0 {
		t.Errorf("%d previews left after commit", f.previews.Len())
	}
	if _, err := os.Stat(it.Path); !os.IsNotExist(err) {
		t.Errorf("thumbnail not removed: %v", err)
	}
}

func TestOpenValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		kind Kind
		src  Source
	}{
		{KindSignature, Source{Document: "three.pdf"}},
		{KindArrange, Source{}},
		{KindExtract, Source{Overlay: "x.png"}},
		{KindScan, Source{Document: "three.pdf"}},
	}
	for _, tt := range tests {
		if _, err := Open("x", tt.kind, tt.src, f.renderer, f.previews, Options{}); !IsPrecondition(err) {
			t.Errorf("Open(%s, %+v): err = %v, want precondition", tt.kind, tt.src, err)
		}
	}
	if _, err := ParseKind("to-word"); err == nil {
		t.Error("ParseKind accepted to-word")
	}
}

func TestOpenCollaboratorFailure(t *testing.T) {
	f := newFixture(t)
	sig := writePNG(t, f.dir, "sig.png", 10, 10)
	_, err := Open("x", KindSignature, Source{Document: "broken.pdf", Overlay: sig}, f.renderer, f.previews, Options{})
	if !IsCollaborator(err) {
		t.Fatalf("err = %v, want collaborator error", err)
	}
	if f.previews.Len() != 0 {
		t.Errorf("%d previews leaked", f.previews.Len())
	}

	_, err = Open("x", KindSignature, Source{Document: "three.pdf", Overlay: filepath.Join(f.dir, "missing.png")}, f.renderer, f.previews, Options{})
	if !IsCollaborator(err) {
		t.Fatalf("missing overlay: err = %v, want collaborator error", err)
	}
	if f.previews.Len() != 0 {
		t.Errorf("%d previews leaked", f.previews.Len())
	}
}

func TestReplaceSource(t *testing.T) {
	f := newFixture(t)
	sig := writePNG(t, f.dir, "sig.png", 10, 10)
	s := f.open(t, KindSignature, Source{Document: "three.pdf", Overlay: sig}, Options{})
	if _, err := s.Measure(100); err != nil {
		t.Fatal(err)
	}
	oldPreview := s.View().DocumentPreview

	if err := s.ReplaceSource(Source{Document: "five.pdf", Overlay: sig}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Surface(); ok {
		t.Error("measurement survived a source change")
	}
	if s.PageCount() != 5 {
		t.Errorf("PageCount() = %d, want 5", s.PageCount())
	}
	if _, err := s.Preview(oldPreview); !errors.Is(err, preview.ErrNotFound) {
		t.Errorf("old preview still served: %v", err)
	}
	if f.previews.Len() != 2 {
		t.Errorf("%d previews, want 2", f.previews.Len())
	}

	if err := s.ReplaceSource(Source{Document: "broken.pdf", Overlay: sig}); !IsCollaborator(err) {
		t.Fatalf("broken replacement: err = %v", err)
	}
	if !s.Closed() || f.previews.Len() != 0 {
		t.Errorf("failed replacement left closed=%v previews=%d", s.Closed(), f.previews.Len())
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, KindArrange, Source{Document: "five.pdf"}, Options{})
	if err := s.Cancel(); err != nil {
		t.Fatal(err)
	}
	if f.previews.Len() != 0 {
		t.Errorf("%d previews left after cancel", f.previews.Len())
	}
	if err := s.Cancel(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Cancel: err = %v", err)
	}
	if _, err := s.Commit(); !errors.Is(err, ErrClosed) {
		t.Errorf("Commit after cancel: err = %v", err)
	}
	if v := s.View(); !v.Closed || v.Pages != nil {
		t.Errorf("closed view = %+v", v)
	}
}
