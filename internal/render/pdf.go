package render

import (
	"bytes"
	"fmt"
	"strings"

	"invoice-generator/internal/core"

	"github.com/jung-kurt/gofpdf"
)

// Layout constants, in millimetres unless noted.
const (
	pageMargin  = 25.4 // 1in on every side
	fontFamily  = "Helvetica"
	bodySize    = 10.0 // pt
	lineHeight  = 6.0
	cellPadding = 1.5
	logoWidth   = 18.5
)

// Particulars, unit price, quantity, amount.
var columnShares = [4]float64{0.40, 0.20, 0.20, 0.20}

// PDFOptions tunes the PDF output. Layout itself is fixed.
type PDFOptions struct {
	Compress bool
}

// PDFRenderer draws an InvoiceView onto an A4 page using the gofpdf core fonts.
type PDFRenderer struct {
	resolve ResourceResolver
	opts    PDFOptions
}

// NewPDFRenderer returns a renderer that resolves the business logo through resolve.
func NewPDFRenderer(resolve ResourceResolver, opts PDFOptions) *PDFRenderer {
	return &PDFRenderer{resolve: resolve, opts: opts}
}

// Render produces the PDF bytes for view. A view with no rows is refused with
// core.ErrEmptyInvoice. Any failure of the engine, including a logo that cannot be
// resolved or read, aborts the render.
func (r *PDFRenderer) Render(view core.InvoiceView) ([]byte, error) {
	if len(view.Rows) == 0 {
		return nil, core.ErrEmptyInvoice
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.opts.Compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Invoice "+view.InvoiceNumber, true)
	pdf.SetAuthor(view.Business.Name, true)
	pdf.SetCreator("invoice-generator", true)
	pdf.AddPage()

	d := &pdfDoc{
		pdf:  pdf,
		tr:   translator(pdf.UnicodeTranslatorFromDescriptor(""), view.InvoiceNumber),
		view: view,
	}
	if err := d.letterhead(r.resolve); err != nil {
		return nil, err
	}
	d.details()
	d.table()
	d.closing()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfDoc carries the state of a single render.
type pdfDoc struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	view core.InvoiceView
}

func (d *pdfDoc) letterhead(resolve ResourceResolver) error {
	b := d.view.Business
	if b.LogoRef != "" {
		path, err := resolve(b.LogoRef)
		if err != nil {
			return fmt.Errorf("resolve logo: %w", err)
		}
		pageW, _ := d.pdf.GetPageSize()
		d.pdf.ImageOptions(path, (pageW-logoWidth)/2, d.pdf.GetY(), logoWidth, 0, true,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		if d.pdf.Err() {
			return fmt.Errorf("load logo %s: %w", path, d.pdf.Error())
		}
		d.pdf.Ln(2)
	}

	d.pdf.SetFont(fontFamily, "B", 14)
	d.pdf.CellFormat(0, 8, d.tr(b.Name), "", 1, "C", false, 0, "")
	d.pdf.SetFont(fontFamily, "", bodySize)
	for _, line := range []string{b.Address, b.Email, strings.Join(b.Phones, " / ")} {
		if line == "" {
			continue
		}
		d.pdf.CellFormat(0, 5, d.tr(line), "", 1, "C", false, 0, "")
	}
	d.rule()
	return nil
}

func (d *pdfDoc) rule() {
	left, _, right, _ := d.pdf.GetMargins()
	pageW, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY() + 2
	d.pdf.SetLineWidth(0.3)
	d.pdf.Line(left, y, pageW-right, y)
	d.pdf.SetY(y + 3)
}

func (d *pdfDoc) details() {
	d.labelled("Invoice Number:", d.view.InvoiceNumber)
	d.labelled("Invoice Date:", d.view.InvoiceDate)
	d.pdf.Ln(lineHeight / 2)
	d.labelled("Customer Name:", d.view.CustomerName)
}

func (d *pdfDoc) labelled(label, value string) {
	d.pdf.SetFont(fontFamily, "B", bodySize)
	w := d.pdf.GetStringWidth(label) + 1
	d.pdf.CellFormat(w, lineHeight, label, "", 0, "L", false, 0, "")
	d.pdf.SetFont(fontFamily, "", bodySize)
	d.pdf.CellFormat(0, lineHeight, d.tr(value), "", 1, "L", false, 0, "")
}

func (d *pdfDoc) columnWidths() [4]float64 {
	left, _, right, _ := d.pdf.GetMargins()
	pageW, _ := d.pdf.GetPageSize()
	usable := pageW - left - right
	var w [4]float64
	for i, share := range columnShares {
		w[i] = usable * share
	}
	return w
}

func (d *pdfDoc) table() {
	widths := d.columnWidths()
	label := d.view.Business.CurrencyLabel
	titles := [4]string{"Particulars", "Price (" + label + ")", "Qty", "Amount (" + label + ")"}

	d.pdf.Ln(3)
	d.tableHeader(widths, titles)
	for _, row := range d.view.Rows {
		d.tableRow(widths, titles, row)
	}

	d.pdf.SetFont(fontFamily, "B", bodySize)
	d.pdf.CellFormat(widths[0]+widths[1]+widths[2], lineHeight+2, "Total", "1", 0, "R", false, 0, "")
	d.pdf.CellFormat(widths[3], lineHeight+2, d.view.Total, "1", 1, "C", false, 0, "")
	d.pdf.SetFont(fontFamily, "", bodySize)
}

func (d *pdfDoc) tableHeader(widths [4]float64, titles [4]string) {
	d.pdf.SetFont(fontFamily, "B", bodySize)
	for i, title := range titles {
		ln := 0
		if i == len(titles)-1 {
			ln = 1
		}
		d.pdf.CellFormat(widths[i], lineHeight+2, d.tr(title), "1", ln, "C", false, 0, "")
	}
	d.pdf.SetFont(fontFamily, "", bodySize)
}

// tableRow draws one item. Long particulars wrap inside the first column and the
// other cells stretch to the same height; a row never splits across pages.
func (d *pdfDoc) tableRow(widths [4]float64, titles [4]string, row core.RowView) {
	desc := d.tr(row.Description)
	lines := d.pdf.SplitLines([]byte(desc), widths[0]-2*cellPadding)
	if len(lines) == 0 {
		lines = [][]byte{[]byte(desc)}
	}
	h := float64(len(lines))*lineHeight + 2

	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+h > pageH-bottom {
		d.pdf.AddPage()
		d.tableHeader(widths, titles)
	}

	x, y := d.pdf.GetXY()
	d.pdf.Rect(x, y, widths[0], h, "D")
	for i, line := range lines {
		d.pdf.SetXY(x+cellPadding, y+1+float64(i)*lineHeight)
		d.pdf.CellFormat(widths[0]-2*cellPadding, lineHeight, string(line), "", 0, "L", false, 0, "")
	}

	cx := x + widths[0]
	for i, text := range []string{row.UnitPrice, row.Quantity, row.Amount} {
		d.pdf.SetXY(cx, y)
		d.pdf.CellFormat(widths[i+1], h, text, "1", 0, "C", false, 0, "")
		cx += widths[i+1]
	}
	d.pdf.SetXY(x, y+h)
}

func (d *pdfDoc) closing() {
	d.pdf.Ln(4)
	d.pdf.SetFont(fontFamily, "B", 12)
	grand := "Grand Total: " + strings.TrimSpace(d.view.Business.CurrencyLabel+" "+d.view.Total)
	d.pdf.CellFormat(0, 8, d.tr(grand), "", 1, "L", false, 0, "")

	if msg := d.view.Business.FooterMessage; msg != "" {
		d.pdf.Ln(10)
		d.pdf.SetFont(fontFamily, "I", bodySize)
		d.pdf.MultiCell(0, lineHeight, d.tr(msg), "", "C", false)
	}
}
