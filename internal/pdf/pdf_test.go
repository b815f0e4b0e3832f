package pdf

import (
	"archive/zip"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"go-pdfeditor/internal/editor"
	"go-pdfeditor/internal/scan"

	"github.com/google/go-cmp/cmp"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func images(t *testing.T, dir string, n int) []string {
	t.Helper()
	var files []string
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, fmt.Sprintf("img%d.png", i+1))
		writePNG(t, p, 60, 80)
		files = append(files, p)
	}
	return files
}

// makePDF builds an n-page document, one image per page.
func makePDF(t *testing.T, dir, name string, n int) string {
	t.Helper()
	out := filepath.Join(dir, name)
	imgDir := filepath.Join(dir, name+"-img")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	err := pdfapi.ImportImagesFile(images(t, imgDir, n), out, pdfcpu.DefaultImportConfig(), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	return out
}

func pageCount(t *testing.T, path string) int {
	t.Helper()
	n, err := PageCount(path)
	if err != nil {
		t.Fatalf("PageCount(%s): %v", filepath.Base(path), err)
	}
	return n
}

// stampCm matches the placement of a watermark form in a page content stream.
var stampCm = regexp.MustCompile(`(-?[\d.]+) (-?[\d.]+) cm /\S+ gs /(Fm\d+) Do`)

// stampPlacement returns where the watermark form is drawn on page and the
// size of its bounding box.
func stampPlacement(t *testing.T, path string, page int) (x, y, w, h float64) {
	t.Helper()
	dir := t.TempDir()
	if err := pdfapi.ExtractContentFile(path, dir, []string{strconv.Itoa(page)}, nil); err != nil {
		t.Fatalf("ExtractContentFile: %v", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".pdf")
	content, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("%s_Content_page_%d.txt", name, page)))
	if err != nil {
		t.Fatal(err)
	}
	m := stampCm.FindStringSubmatch(string(content))
	if m == nil {
		t.Fatalf("no form drawn on page %d:\n%s", page, content)
	}
	x, _ = strconv.ParseFloat(m[1], 64)
	y, _ = strconv.ParseFloat(m[2], 64)

	ctx, err := pdfapi.ReadContextFile(path)
	if err != nil {
		t.Fatal(err)
	}
	pageDict, _, _, err := ctx.PageDict(page, true)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ctx.DereferenceDict(pageDict["Resources"])
	if err != nil {
		t.Fatal(err)
	}
	xobjects, err := ctx.DereferenceDict(res["XObject"])
	if err != nil {
		t.Fatal(err)
	}
	form, _, err := ctx.DereferenceStreamDict(xobjects[m[3]])
	if err != nil || form == nil {
		t.Fatalf("form %s: %v", m[3], err)
	}
	bbox, err := ctx.DereferenceArray(form.Dict["BBox"])
	if err != nil || len(bbox) != 4 {
		t.Fatalf("BBox = %v, %v", bbox, err)
	}
	if w, err = ctx.DereferenceNumber(bbox[2]); err != nil {
		t.Fatal(err)
	}
	if h, err = ctx.DereferenceNumber(bbox[3]); err != nil {
		t.Fatal(err)
	}
	return x, y, w, h
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s left behind: %v", filepath.Base(path), err)
	}
}

func TestMergePDFs(t *testing.T) {
	dir := t.TempDir()
	a := makePDF(t, dir, "a.pdf", 2)
	b := makePDF(t, dir, "b.pdf", 3)
	out := filepath.Join(dir, "merged.pdf")
	if err := MergePDFs([]string{a, b}, out); err != nil {
		t.Fatal(err)
	}
	if err := RemoveBookmarks(out); err != nil {
		t.Fatal(err)
	}
	if got := pageCount(t, out); got != 5 {
		t.Errorf("merged page count = %d, want 5", got)
	}
}

func TestArrangePages(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "in.pdf", 3)
	out := filepath.Join(dir, "arranged.pdf")
	if err := ArrangePages(in, []int{3, 1, 2}, map[int]int{1: 90, 2: 0, 3: 180}, out); err != nil {
		t.Fatal(err)
	}
	if got := pageCount(t, out); got != 3 {
		t.Errorf("page count = %d, want 3", got)
	}
	if err := ArrangePages(in, nil, nil, out+"2"); err == nil {
		t.Error("empty order accepted")
	}
}

func TestDeletePages(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "in.pdf", 3)
	out := filepath.Join(dir, "out.pdf")
	if err := DeletePages(in, []int{1, 2, 3}, out); !errors.Is(err, ErrNoPagesLeft) {
		t.Fatalf("deleting every page: err = %v", err)
	}
	assertMissing(t, out)
	if err := DeletePages(in, []int{2}, out); err != nil {
		t.Fatal(err)
	}
	if got := pageCount(t, out); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func TestRotateAll(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "in.pdf", 2)
	if err := RotateAll(in, 45, filepath.Join(dir, "bad.pdf")); !errors.Is(err, ErrInvalidRotation) {
		t.Errorf("RotateAll(45): err = %v", err)
	}
	out := filepath.Join(dir, "rotated.pdf")
	if err := RotateAll(in, 270, out); err != nil {
		t.Fatal(err)
	}
	if got := pageCount(t, out); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func TestAddTextWatermark(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "in.pdf", 2)
	if err := AddTextWatermark(in, "", filepath.Join(dir, "x.pdf")); !errors.Is(err, ErrEmptyText) {
		t.Errorf("empty text: err = %v", err)
	}
	out := filepath.Join(dir, "wm.pdf")
	if err := AddTextWatermark(in, "CONFIDENTIAL", out); err != nil {
		t.Fatal(err)
	}
	if got := pageCount(t, out); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func TestLockUnlock(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "in.pdf", 2)
	locked := filepath.Join(dir, "locked.pdf")
	if err := Lock(in, "", locked); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("empty password: err = %v", err)
	}
	if err := Lock(in, "s3cret", locked); err != nil {
		t.Fatal(err)
	}

	wrong := filepath.Join(dir, "wrong.pdf")
	if err := Unlock(locked, "guess", wrong); err == nil {
		t.Error("wrong password accepted")
	}
	assertMissing(t, wrong)

	unlocked := filepath.Join(dir, "unlocked.pdf")
	if err := Unlock(locked, "s3cret", unlocked); err != nil {
		t.Fatal(err)
	}
	if got := pageCount(t, unlocked); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func zipEntries(t *testing.T, path string) map[string][]byte {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	out := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		out[f.Name] = b
	}
	return out
}

func names(m map[string][]byte) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestProcessSplit(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "report.pdf", 5)
	p := NewProcessor(dir, nil)

	res, err := p.Process(editor.Source{Document: in}, editor.ExtractPayload{Pages: []int{2, 4}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "split_report.pdf.zip" {
		t.Errorf("Filename = %q", res.Filename)
	}
	entries := zipEntries(t, res.Path)
	if diff := cmp.Diff([]string{"extracted_pages.pdf", "remaining_pages.pdf"}, names(entries)); diff != "" {
		t.Fatalf("zip entries (-want +got):\n%s", diff)
	}
	for name, want := range map[string]int{"extracted_pages.pdf": 2, "remaining_pages.pdf": 3} {
		path := filepath.Join(dir, "check-"+name)
		if err := os.WriteFile(path, entries[name], 0o644); err != nil {
			t.Fatal(err)
		}
		if got := pageCount(t, path); got != want {
			t.Errorf("%s has %d pages, want %d", name, got, want)
		}
	}

	all, err := p.Process(editor.Source{Document: in}, editor.ExtractPayload{Pages: []int{1, 2, 3, 4, 5}})
	if err != nil {
		t.Fatal(err)
	}
	if got := names(zipEntries(t, all.Path)); len(got) != 1 {
		t.Errorf("full extraction entries = %v", got)
	}
}

func TestProcessSignature(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "contract.pdf", 2)
	sig := filepath.Join(dir, "sig.png")
	writePNG(t, sig, 120, 60)
	p := NewProcessor(dir, nil)

	payload := editor.SignaturePayload{SourcePage: 2, X: 20, Y: 240, Width: 80, Height: 40}
	res, err := p.Process(editor.Source{Document: in, Overlay: sig}, payload)
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "signed_contract.pdf" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if got := pageCount(t, res.Path); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
	x, y, w, h := stampPlacement(t, res.Path, 2)
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"x", x, 20}, {"y", y, 240}, {"width", w, 80}, {"height", h, 40},
	} {
		if math.Abs(c.got-c.want) > 1e-3 {
			t.Errorf("stamp %s = %v, want %v", c.name, c.got, c.want)
		}
	}

	_, err = p.Process(editor.Source{Document: filepath.Join(dir, "missing.pdf"), Overlay: sig}, payload)
	if err == nil {
		t.Fatal("missing source accepted")
	}
}

func TestProcessArrange(t *testing.T) {
	dir := t.TempDir()
	in := makePDF(t, dir, "deck.pdf", 3)
	p := NewProcessor(dir, nil)
	res, err := p.Process(editor.Source{Document: in}, editor.ArrangePayload{
		Order:     []int{3, 1, 2},
		Rotations: map[int]int{1: 90, 2: 0, 3: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "arranged_deck.pdf" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if got := pageCount(t, res.Path); got != 3 {
		t.Errorf("page count = %d, want 3", got)
	}
}

func TestProcessScan(t *testing.T) {
	dir := t.TempDir()
	files := images(t, dir, 3)
	p := NewProcessor(dir, nil)

	res, err := p.Process(editor.Source{Images: files}, editor.ScanPayload{
		Files: files, Effect: scan.EffectMonochrome, OutputFormat: scan.FormatPDF,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "scanned.pdf" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if got := pageCount(t, res.Path); got != 3 {
		t.Errorf("page count = %d, want 3", got)
	}

	res, err = p.Process(editor.Source{Images: files}, editor.ScanPayload{
		Files: files, Effect: scan.EffectColorBoost, OutputFormat: scan.FormatJPG,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "scanned.zip" {
		t.Errorf("Filename = %q", res.Filename)
	}
	want := []string{"page_001.jpg", "page_002.jpg", "page_003.jpg"}
	if diff := cmp.Diff(want, names(zipEntries(t, res.Path))); diff != "" {
		t.Errorf("zip entries (-want +got):\n%s", diff)
	}
}
