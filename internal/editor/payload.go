package editor

import "go-pdfeditor/internal/scan"

// Payload is the result of a successful commit. The concrete type depends
// on the session kind.
type Payload interface {
	Kind() Kind
}

// SignaturePayload places the overlay asset on one page, in document units
// measured from the page's lower-left corner.
type SignaturePayload struct {
	SourcePage int     `json:"sourcePage"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

func (SignaturePayload) Kind() Kind { return KindSignature }

// ArrangePayload lists source pages in output order together with the
// rotation for each source page.
type ArrangePayload struct {
	Order     []int       `json:"order"`
	Rotations map[int]int `json:"rotations"`
}

func (ArrangePayload) Kind() Kind { return KindArrange }

// ExtractPayload lists the selected source pages in collection order.
type ExtractPayload struct {
	Pages []int `json:"pages"`
}

func (ExtractPayload) Kind() Kind { return KindExtract }

// ScanPayload is the ordered image list plus effect and output format.
type ScanPayload struct {
	Files        []string          `json:"files"`
	Effect       scan.Effect       `json:"effect"`
	OutputFormat scan.OutputFormat `json:"outputFormat"`
}

func (ScanPayload) Kind() Kind { return KindScan }
