package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// Orientation of a document's pages
type Orientation string

// Unit of document coordinates
type Unit string

const (
	Portrait Orientation = "P"

	Millimetre Unit = "mm"
)

// Document is a paged file being assembled
type Document interface {
	AddPage()
	Place(img image.Image, x, y, w, h float64) error
	Save(path string) error
}

// DocumentService creates documents
type DocumentService interface {
	NewDocument(paper Paper, orientation Orientation, unit Unit) (Document, error)
}

// PDFService produces PDF documents with fpdf
type PDFService struct {
	Title   string
	Creator string
}

// NewDocument starts an empty PDF with no margins and no automatic page breaks
func (s PDFService) NewDocument(paper Paper, orientation Orientation, unit Unit) (Document, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: string(orientation),
		UnitStr:        string(unit),
		Size:           fpdf.SizeType{Wd: paper.WidthMM, Ht: paper.HeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if s.Title != "" {
		pdf.SetTitle(s.Title, true)
	}
	if s.Creator != "" {
		pdf.SetCreator(s.Creator, true)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return &pdfDocument{pdf: pdf}, nil
}

type pdfDocument struct {
	pdf    *fpdf.Fpdf
	images int
}

func (d *pdfDocument) AddPage() {
	d.pdf.AddPage()
}

// Place embeds img as a PNG at (x, y) with size w x h in document units
func (d *pdfDocument) Place(img image.Image, x, y, w, h float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode page image: %w", err)
	}

	d.images++
	name := fmt.Sprintf("page-%d", d.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("failed to place image: %w", err)
	}
	return nil
}

func (d *pdfDocument) Save(path string) error {
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
