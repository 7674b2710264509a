// Package export renders a user's filtered entries into a downloadable
// report document. Callers must not invoke it with an empty entry set; the
// handlers surface a "nothing to export" condition instead.
package export

import (
	"bytes"
	"sort"
	"time"

	"psidiario/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// Document is an exportable report.
type Document interface {
	Bytes() ([]byte, error)
	Save(path string) error
}

// Generator produces a Document from a user and their filtered entries.
type Generator interface {
	Generate(user models.User, entries []models.DailyEntry) (Document, error)
}

// Report documents label moods slightly differently from the app screens.
var pdfMoodLabels = map[models.Mood]string{
	models.MoodVeryBad:   "Muito Triste",
	models.MoodBad:       "Triste",
	models.MoodNeutral:   "Neutro",
	models.MoodGood:      "Bem",
	models.MoodExcellent: "Muito Bem",
}

// PDFGenerator renders the follow-up report as an A4 PDF.
type PDFGenerator struct{}

// NewPDFGenerator returns a PDF report generator.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

type pdfDocument struct {
	pdf *gofpdf.Fpdf
}

func (d *pdfDocument) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *pdfDocument) Save(path string) error {
	return d.pdf.OutputFileAndClose(path)
}

// Generate builds the report: a header, the patient block, then one section
// per entry ordered by entry date descending (the display date, not the
// creation timestamp).
func (g *PDFGenerator) Generate(user models.User, entries []models.DailyEntry) (Document, error) {
	sorted := make([]models.DailyEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(184, 134, 11)
	pdf.SetY(13)
	pdf.CellFormat(0, 10, tr("Psi.Aurilene - Relatório de Acompanhamento"), "", 1, "C", false, 0, "")

	// Patient info
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(20, 35, tr("Paciente: "+user.FullName))
	pdf.Text(20, 42, tr("Data de Nascimento: "+formatDateBR(user.BirthDate)))
	pdf.Text(20, 49, tr("Gerado em: "+time.Now().Format("02/01/2006")))

	pdf.SetLineWidth(0.5)
	pdf.Line(20, 52, 190, 52)

	y := 62.0
	for _, entry := range sorted {
		if y > 270 {
			pdf.AddPage()
			y = 20
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(20, y, tr("Data: "+formatDateBR(entry.Date)))
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(140, y, tr("Humor: "+pdfMoodLabels[entry.Mood]))

		y += 7
		pdf.SetXY(20, y-5)
		pdf.MultiCell(170, 6, tr("Relato: "+entry.Notes), "", "L", false)
		y = pdf.GetY() + 10

		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(20, y-5, 190, y-5)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return &pdfDocument{pdf: pdf}, nil
}

// formatDateBR renders an ISO calendar date as dd/mm/yyyy, falling back to
// the raw value when it does not parse.
func formatDateBR(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
