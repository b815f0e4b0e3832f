// Package pdf provides the PDF operations of the editing service.
//
// Functions:
//   - MergePDFs: Merges multiple PDF files into a single output file.
//   - RemoveBookmarks: Removes bookmarks from a PDF file in-place.
//   - SignPDF: Stamps an image at a document-space placement on one page.
//   - ArrangePages: Rewrites a PDF in a new page order with per-page rotations.
//   - ExtractPages, DeletePages, RotateAll, AddTextWatermark, Lock, Unlock:
//     Single-file operations.
//
// Every function that writes outputPath removes it again on failure.
// Processor maps committed editor payloads onto these functions.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/render"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var (
	ErrNoPagesLeft     = errors.New("at least one page must remain")
	ErrInvalidRotation = errors.New("rotation must be 90, 180 or 270")
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrEmptyText       = errors.New("watermark text must not be empty")
)

func MergePDFs(files []string, outputPath string) error {
	config := model.NewDefaultConfiguration()
	return removeOnError(outputPath, pdfapi.MergeCreateFile(files, outputPath, false, config))
}

func RemoveBookmarks(pdfPath string) error {
	config := model.NewDefaultConfiguration()
	return pdfapi.RemoveBookmarksFile(pdfPath, pdfPath, config)
}

// PageCount returns the number of pages of a PDF file.
func PageCount(pdfPath string) (int, error) {
	n, err := pdfapi.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}

// SignPDF stamps a signature image onto a PDF.
// pageNum: 1-based page number
// x, y: lower-left corner in points, origin at the bottom-left of the page
// width: stamped width in points; the height follows the image aspect ratio
func SignPDF(pdfPath, sigImgPath string, pageNum int, x, y, width float64, outputPath string) error {
	size, err := render.ImageSize(sigImgPath)
	if err != nil {
		return fmt.Errorf("failed to read signature image: %w", err)
	}
	if size.IsZero() || width <= 0 {
		return fmt.Errorf("invalid signature size")
	}

	if err := copyFile(pdfPath, outputPath); err != nil {
		return fmt.Errorf("failed to copy PDF: %w", err)
	}

	// Absolute scale maps image pixels to points; rot:0 disables the diagonal default.
	desc := fmt.Sprintf("pos:bl, scale:%.6f abs, rot:0, op:1", width/size.Width)
	wm, err := pdfcpu.ParseImageWatermarkDetails(sigImgPath, desc, true, types.POINTS)
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to parse image watermark: %w", err)
	}
	wm.Dx = x
	wm.Dy = y

	config := model.NewDefaultConfiguration()
	selected := []string{strconv.Itoa(pageNum)}
	if err := pdfapi.AddWatermarksFile(outputPath, "", selected, wm, config); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to apply signature: %w", err)
	}
	return nil
}

// ArrangePages writes the pages of pdfPath in order. rotations is keyed by
// source page number; the rotation travels with the page.
func ArrangePages(pdfPath string, order []int, rotations map[int]int, outputPath string) error {
	if len(order) == 0 {
		return fmt.Errorf("page order is empty")
	}
	config := model.NewDefaultConfiguration()
	if err := pdfapi.CollectFile(pdfPath, outputPath, pages.Selection(order), config); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to reorder pages: %w", err)
	}

	// group output positions by angle, one rotate pass per angle
	groups := make(map[int][]int)
	for i, src := range order {
		if r := rotations[src] % 360; r != 0 {
			groups[r] = append(groups[r], i+1)
		}
	}
	angles := make([]int, 0, len(groups))
	for a := range groups {
		angles = append(angles, a)
	}
	sort.Ints(angles)
	for _, a := range angles {
		if err := pdfapi.RotateFile(outputPath, "", a, pages.Selection(groups[a]), config); err != nil {
			os.Remove(outputPath)
			return fmt.Errorf("failed to rotate pages: %w", err)
		}
	}
	return nil
}

// ExtractPages writes the selected pages, in ascending order, to outputPath.
func ExtractPages(pdfPath string, selected []int, outputPath string) error {
	if len(selected) == 0 {
		return fmt.Errorf("no pages selected")
	}
	sorted := append([]int(nil), selected...)
	sort.Ints(sorted)
	config := model.NewDefaultConfiguration()
	return removeOnError(outputPath, pdfapi.CollectFile(pdfPath, outputPath, pages.Selection(sorted), config))
}

// DeletePages removes the given pages. Removing every page is an error.
func DeletePages(pdfPath string, remove []int, outputPath string) error {
	n, err := PageCount(pdfPath)
	if err != nil {
		return err
	}
	if len(pages.Complement(remove, n)) == 0 {
		return ErrNoPagesLeft
	}
	config := model.NewDefaultConfiguration()
	return removeOnError(outputPath, pdfapi.RemovePagesFile(pdfPath, outputPath, pages.Selection(remove), config))
}

// RotateAll rotates every page clockwise by angle.
func RotateAll(pdfPath string, angle int, outputPath string) error {
	switch angle {
	case 90, 180, 270:
	default:
		return ErrInvalidRotation
	}
	config := model.NewDefaultConfiguration()
	return removeOnError(outputPath, pdfapi.RotateFile(pdfPath, outputPath, angle, nil, config))
}

// AddTextWatermark puts a diagonal, translucent text behind the content of
// every page.
func AddTextWatermark(pdfPath, text, outputPath string) error {
	if text == "" {
		return ErrEmptyText
	}
	config := model.NewDefaultConfiguration()
	desc := "font:Helvetica, points:48, rot:45, op:0.3, fillc:#808080"
	return removeOnError(outputPath, pdfapi.AddTextWatermarksFile(pdfPath, outputPath, nil, false, text, desc, config))
}

// Lock encrypts a PDF with AES-256. The password serves as user and owner
// password.
func Lock(pdfPath, password, outputPath string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	config := model.NewAESConfiguration(password, password, 256)
	return removeOnError(outputPath, pdfapi.EncryptFile(pdfPath, outputPath, config))
}

// Unlock removes the encryption of a PDF.
func Unlock(pdfPath, password, outputPath string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	config := model.NewAESConfiguration(password, password, 256)
	return removeOnError(outputPath, pdfapi.DecryptFile(pdfPath, outputPath, config))
}

func removeOnError(outputPath string, err error) error {
	if err != nil {
		os.Remove(outputPath)
	}
	return err
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
