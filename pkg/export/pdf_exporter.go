package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const pageWidth = 190.0

// PDFExporter renders report documents into an A4 PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF: heading, one table per section with its totals row,
// summary lines and the signature block.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 7, tr(strings.ToUpper(doc.Subtitle)), "", 1, "C", false, 0, "")
	}
	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, tr(strings.ToUpper(doc.Title)), "", 1, "C", false, 0, "")
	}
	if doc.Period != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr("Periode: "+doc.Period), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, section := range doc.Sections {
		headers := section.Data.Headers
		if len(headers) == 0 {
			return nil, fmt.Errorf("pdf section %q has no headers", section.Title)
		}
		if section.Title != "" {
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", false, 0, "")
		}
		colWidth := pageWidth / float64(len(headers))

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, header := range headers {
			pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, row := range section.Data.Rows {
			for _, header := range headers {
				pdf.CellFormat(colWidth, 7, tr(row[header]), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		if section.Data.Totals != nil {
			pdf.SetFont("Arial", "B", 8)
			for _, header := range headers {
				pdf.CellFormat(colWidth, 7, tr(section.Data.Totals[header]), "1", 0, "", true, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(5)
	}

	if len(doc.Summary) > 0 {
		pdf.SetFont("Arial", "B", 10)
		for _, line := range doc.Summary {
			pdf.CellFormat(60, 7, tr(line[0]), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, tr(line[1]), "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	if doc.Signature != nil && len(doc.Signature.Signatories) > 0 {
		renderSignature(pdf, tr, doc.Signature)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderSignature(pdf *gofpdf.Fpdf, tr func(string) string, sig *Signature) {
	// keep the block on one page
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+45 > pageHeight-bottom {
		pdf.AddPage()
	}

	colWidth := pageWidth / float64(len(sig.Signatories))
	pdf.SetFont("Arial", "", 10)
	placeDate := strings.TrimSpace(strings.Trim(sig.Place+", "+sig.Date, ", "))
	if placeDate != "" {
		pdf.SetX(10 + colWidth*float64(len(sig.Signatories)-1))
		pdf.CellFormat(colWidth, 6, tr(placeDate), "", 1, "C", false, 0, "")
	}
	for _, s := range sig.Signatories {
		pdf.CellFormat(colWidth, 6, tr(s.Role), "", 0, "C", false, 0, "")
	}
	pdf.Ln(24)
	pdf.SetFont("Arial", "BU", 10)
	for _, s := range sig.Signatories {
		pdf.CellFormat(colWidth, 6, tr(s.Name), "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}
