package exporter

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFEncoder renders rows as a simple bordered grid, one page flowing into
// the next. PDF output is the slowest and most memory hungry format; it is
// here for small human-facing result sets.
type PDFEncoder struct {
	pdf *fpdf.Fpdf
	w   io.Writer
	err error
}

func NewPDFEncoder(w io.Writer) *PDFEncoder {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()
	return &PDFEncoder{
		pdf: pdf,
		w:   w,
	}
}

func (e *PDFEncoder) WriteHeader(columns []string) error {
	if e.err != nil {
		return e.err
	}

	e.pdf.SetFont("Arial", "B", 10)
	colWidth := e.columnWidth(len(columns))
	for _, col := range columns {
		e.pdf.CellFormat(colWidth, 7, col, "1", 0, "C", false, 0, "")
	}
	e.pdf.Ln(-1)
	e.pdf.SetFont("Arial", "", 10)
	return nil
}

func (e *PDFEncoder) WriteRow(values []any) error {
	if e.err != nil {
		return e.err
	}

	colWidth := e.columnWidth(len(values))
	for _, v := range values {
		str := toString(v)
		// The CSV injection quote is noise on paper.
		str = strings.TrimPrefix(str, "'")
		e.pdf.CellFormat(colWidth, 7, str, "1", 0, "L", false, 0, "")
	}
	e.pdf.Ln(-1)
	return nil
}

// columnWidth divides the usable page width evenly across n columns.
func (e *PDFEncoder) columnWidth(n int) float64 {
	pageWidth, _ := e.pdf.GetPageSize()
	left, _, right, _ := e.pdf.GetMargins()
	return (pageWidth - left - right) / float64(n)
}

func (e *PDFEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.pdf.Output(e.w)
}

func (e *PDFEncoder) Error() error {
	return e.err
}

func (e *PDFEncoder) Close() error {
	return e.Flush()
}
