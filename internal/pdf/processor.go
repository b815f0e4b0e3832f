package pdf

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-pdfeditor/internal/editor"
	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/scan"
	"go-pdfeditor/internal/utils"

	"github.com/disintegration/imaging"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// Result is a produced file and the name it should be downloaded as.
type Result struct {
	Path     string `json:"-"`
	Filename string `json:"filename"`
}

// Processor turns committed editor payloads into files in OutputDir.
type Processor struct {
	OutputDir string
	Log       *logrus.Logger
}

func NewProcessor(outputDir string, log *logrus.Logger) *Processor {
	return &Processor{OutputDir: outputDir, Log: log}
}

// Process runs the operation described by p against the session source.
func (p *Processor) Process(src editor.Source, payload editor.Payload) (Result, error) {
	var (
		res Result
		err error
	)
	switch pl := payload.(type) {
	case editor.SignaturePayload:
		res = p.result("signed", src.Document, ".pdf", "signed_"+utils.DisplayName(src.Document))
		err = SignPDF(src.Document, src.Overlay, pl.SourcePage, pl.X, pl.Y, pl.Width, res.Path)
	case editor.ArrangePayload:
		res = p.result("arranged", src.Document, ".pdf", "arranged_"+utils.DisplayName(src.Document))
		err = ArrangePages(src.Document, pl.Order, pl.Rotations, res.Path)
	case editor.ExtractPayload:
		res = p.result("split", src.Document, ".zip", "split_"+utils.DisplayName(src.Document)+".zip")
		err = p.split(src.Document, pl.Pages, res.Path)
	case editor.ScanPayload:
		res = p.result("scanned", "", "."+extension(pl.OutputFormat), pl.OutputFormat.Filename())
		err = p.scan(pl, res.Path)
	default:
		return Result{}, fmt.Errorf("unsupported payload %T", payload)
	}
	if err != nil {
		os.Remove(res.Path)
		return Result{}, err
	}
	if p.Log != nil {
		p.Log.WithFields(logrus.Fields{
			"kind":   payload.Kind(),
			"output": res.Filename,
		}).Info("Editor result written")
	}
	return res, nil
}

func extension(f scan.OutputFormat) string {
	if f == scan.FormatJPG {
		return "zip"
	}
	return "pdf"
}

func (p *Processor) result(prefix, src, ext, name string) Result {
	stem := prefix
	if src != "" {
		stem = prefix + "-" + strings.TrimSuffix(utils.DisplayName(src), filepath.Ext(src))
	}
	return Result{
		Path:     filepath.Join(p.OutputDir, utils.StoredName("", stem+ext)),
		Filename: name,
	}
}

// split writes extracted_pages.pdf and, when pages are left over,
// remaining_pages.pdf into a ZIP archive.
func (p *Processor) split(pdfPath string, selected []int, outputPath string) error {
	n, err := PageCount(pdfPath)
	if err != nil {
		return err
	}
	tmp, err := os.MkdirTemp(p.OutputDir, "split-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	entries := []string{filepath.Join(tmp, "extracted_pages.pdf")}
	if err := ExtractPages(pdfPath, selected, entries[0]); err != nil {
		return fmt.Errorf("failed to extract pages: %w", err)
	}
	if rest := pages.Complement(selected, n); len(rest) > 0 {
		remaining := filepath.Join(tmp, "remaining_pages.pdf")
		if err := ExtractPages(pdfPath, rest, remaining); err != nil {
			return fmt.Errorf("failed to collect remaining pages: %w", err)
		}
		entries = append(entries, remaining)
	}
	return writeZip(outputPath, entries)
}

// scan applies the effect to every staged image and writes either one PDF
// page per image or a ZIP of JPEGs.
func (p *Processor) scan(pl editor.ScanPayload, outputPath string) error {
	tmp, err := os.MkdirTemp(p.OutputDir, "scan-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	var processed []string
	for i, file := range pl.Files {
		img, err := render.LoadImage(file)
		if err != nil {
			return err
		}
		out := filepath.Join(tmp, fmt.Sprintf("page_%03d.jpg", i+1))
		if err := imaging.Save(scan.Apply(img, pl.Effect), out, imaging.JPEGQuality(90)); err != nil {
			return fmt.Errorf("failed to encode %s: %w", filepath.Base(file), err)
		}
		processed = append(processed, out)
	}

	if pl.OutputFormat == scan.FormatJPG {
		return writeZip(outputPath, processed)
	}
	config := model.NewDefaultConfiguration()
	if err := pdfapi.ImportImagesFile(processed, outputPath, pdfcpu.DefaultImportConfig(), config); err != nil {
		return fmt.Errorf("failed to build PDF from images: %w", err)
	}
	return nil
}

// writeZip stores files flat under their base names.
func writeZip(outputPath string, files []string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)
	for _, f := range files {
		if err := addToZip(zw, f); err != nil {
			zw.Close()
			out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func addToZip(zw *zip.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
