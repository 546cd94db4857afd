package pdfcontent

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"golang.org/x/image/draw"
)

// coverWidth is the fixed horizontal resolution of the rendered cover image;
// the vertical resolution follows the first page's aspect ratio.
const coverWidth = 2550

// Content is the extracted payload of a PDF attachment.
type Content struct {
	// Text is the full text, fragments concatenated with a line break wherever
	// the vertical text position changes between fragments.
	Text string
	// Cover is the first page rendered as a PNG at coverWidth.
	Cover []byte
	// Ratio is the first page's width/height; 0 when it could not be determined.
	Ratio float64
}

// Extractor extracts text and a cover image from PDF data.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the PDF and returns its text content, cover image and first
// page aspect ratio. A Ratio of 0 with a nil error means the page geometry was
// unusable; callers treat that as a failed extraction.
func (e *Extractor) Extract(data []byte) (Content, error) {
	text, err := extractText(data)
	if err != nil {
		return Content{}, fmt.Errorf("text extraction: %w", err)
	}

	cover, ratio, err := renderCover(data)
	if err != nil {
		return Content{}, fmt.Errorf("cover render: %w", err)
	}

	return Content{Text: text, Cover: cover, Ratio: ratio}, nil
}

// extractText walks every page's positioned text runs. A change in the run's
// vertical position starts a new line, mirroring how column text is laid out.
func extractText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb bytes.Buffer
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		var lastY float64
		first := true
		for _, run := range page.Content().Text {
			if first || run.Y == lastY {
				sb.WriteString(run.S)
			} else {
				sb.WriteString("\n")
				sb.WriteString(run.S)
			}
			lastY = run.Y
			first = false
		}
	}
	return sb.String(), nil
}

// renderCover rasterizes the first page and scales it to coverWidth, deriving
// the height from the page aspect ratio (square when the ratio is unknown).
func renderCover(data []byte) ([]byte, float64, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, 0, err
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, 0, fmt.Errorf("document has no pages")
	}

	ratio := 0.0
	if bound, err := doc.Bound(0); err == nil && bound.Dy() > 0 {
		ratio = float64(bound.Dx()) / float64(bound.Dy())
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, 0, err
	}
	if ratio == 0 && img.Bounds().Dy() > 0 {
		ratio = float64(img.Bounds().Dx()) / float64(img.Bounds().Dy())
	}

	renderRatio := ratio
	if renderRatio == 0 {
		renderRatio = 1
	}
	height := int(float64(coverWidth) / renderRatio)
	if height <= 0 {
		height = coverWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, coverWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), ratio, nil
}
