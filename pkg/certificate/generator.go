package certificate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// A4 landscape dimensions in millimetres.
const (
	pageWidth  = 297.0
	pageHeight = 210.0
)

// Layout pins the student name and issue date at fixed positions over the
// template artwork.
type Layout struct {
	NameX float64
	NameY float64
	DateX float64
	DateY float64
}

// Generator composes personalized completion certificates.
type Generator struct {
	templatePath string
	layout       Layout
}

// NewGenerator validates the template artwork and returns a generator.
func NewGenerator(templatePath string, layout Layout) (*Generator, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err != nil {
			return nil, fmt.Errorf("certificate template: %w", err)
		}
	}
	return &Generator{templatePath: templatePath, layout: layout}, nil
}

// Render produces the certificate PDF for the given student name, stamping
// the issue date as dd/mm/yyyy.
func (g *Generator) Render(name string, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	if g.templatePath != "" {
		opts := gofpdf.ImageOptions{ImageType: imageType(g.templatePath), ReadDpi: true}
		pdf.ImageOptions(g.templatePath, 0, 0, pageWidth, pageHeight, false, opts, 0, "")
	}

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.Text(g.layout.NameX, g.layout.NameY, name)

	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(g.layout.DateX, g.layout.DateY, issuedAt.Format("02/01/2006"))

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

func imageType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPG"
	default:
		return "PNG"
	}
}
