package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageHeight   = 297.0
	marginLeft   = 10.0
	marginTop    = 10.0
	footerHeight = 20.0
	titleHeight  = 10.0
	titleGap     = 5.0
	metaHeight   = 10.0
	metaGap      = 10.0
	rowHeight    = 10.0
)

// columnWidths are the fixed widths of Date, Kind, Category, Amount, Note.
var columnWidths = [numColumns]float64{30, 25, 40, 30, 60}

// PDFRenderer lays reports out as A4 PDF documents. The title and the column
// header repeat on every page and each page carries a "Page N/M" footer.
type PDFRenderer struct {
	// Compress toggles stream compression. Uncompressed output is handy for
	// inspecting the generated document.
	Compress bool
}

// NewPDFRenderer returns a renderer producing compressed PDFs.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Compress: true}
}

func (r *PDFRenderer) MIMEType() string  { return "application/pdf" }
func (r *PDFRenderer) Extension() string { return "pdf" }

// RowsPerPage returns how many rows fit on the first and on later pages.
func (r *PDFRenderer) RowsPerPage() (first, rest int) {
	usable := pageHeight - marginTop - footerHeight
	later := usable - titleHeight - titleGap - rowHeight
	firstPage := later - 2*metaHeight - metaGap
	return int(firstPage / rowHeight), int(later / rowHeight)
}

// Layout returns the rows of t grouped by page.
func (r *PDFRenderer) Layout(t Table) [][][]string {
	first, rest := r.RowsPerPage()
	return Paginate(t.Rows, first, rest)
}

// Render writes the PDF document for t to w.
func (r *PDFRenderer) Render(w io.Writer, h Header, t Table) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(false, footerHeight)
	pdf.AliasNbPages("")
	pdf.SetTitle(h.title(), true)
	pdf.SetAuthor(h.Owner, true)
	if !h.GeneratedAt.IsZero() {
		pdf.SetCreationDate(h.GeneratedAt)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	for i, rows := range r.Layout(t) {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, titleHeight, tr(h.title()), "", 1, "C", false, 0, "")
		pdf.Ln(titleGap)

		if i == 0 {
			pdf.SetFont("Arial", "", 12)
			pdf.CellFormat(0, metaHeight, tr("User: "+h.Owner), "", 1, "L", false, 0, "")
			pdf.CellFormat(0, metaHeight, "Date Generated: "+h.GeneratedAt.Format(model.DateFormat), "", 1, "L", false, 0, "")
			pdf.Ln(metaGap)
		}

		pdf.SetFont("Arial", "B", 10)
		for c, name := range t.Columns {
			pdf.CellFormat(columnWidths[c], rowHeight, name, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, row := range rows {
			for c, cell := range row {
				pdf.CellFormat(columnWidths[c], rowHeight, tr(cell), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
