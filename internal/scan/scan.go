// Package scan holds the visual effects and output formats offered when
// staging photographed pages.
package scan

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Effect is applied to every staged image before output.
type Effect string

const (
	EffectNone       Effect = "original"
	EffectMonochrome Effect = "scan"
	EffectColorBoost Effect = "magic_color"
)

// DefaultEffect is preselected when a staging session opens.
const DefaultEffect = EffectMonochrome

// Effects lists every effect in display order.
var Effects = []Effect{EffectNone, EffectMonochrome, EffectColorBoost}

// ParseEffect accepts the wire names and a few descriptive aliases.
func ParseEffect(s string) (Effect, error) {
	switch s {
	case "original", "none":
		return EffectNone, nil
	case "scan", "monochrome", "monochrome-contrast":
		return EffectMonochrome, nil
	case "magic_color", "color-boost":
		return EffectColorBoost, nil
	}
	return "", fmt.Errorf("unknown effect %q", s)
}

// Apply returns img with the effect applied.
func Apply(img image.Image, e Effect) image.Image {
	switch e {
	case EffectMonochrome:
		return imaging.AdjustContrast(imaging.Grayscale(img), 50)
	case EffectColorBoost:
		return imaging.AdjustSaturation(imaging.AdjustContrast(img, 40), 20)
	default:
		return img
	}
}

// OutputFormat selects between one paginated PDF and an archive of images.
type OutputFormat string

const (
	FormatPDF OutputFormat = "pdf"
	FormatJPG OutputFormat = "jpg"
)

const DefaultFormat = FormatPDF

func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "pdf":
		return FormatPDF, nil
	case "jpg", "jpeg", "zip":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Filename returns the download name for a result in this format.
func (f OutputFormat) Filename() string {
	if f == FormatJPG {
		return "scanned.zip"
	}
	return "scanned.pdf"
}
