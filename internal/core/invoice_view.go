package core

import (
	"strconv"
)

// InvoiceView is the fully formatted data a renderer fills into its fixed template.
// Every monetary field has already been through FormatINR.
type InvoiceView struct {
	Business      Business
	InvoiceNumber string
	InvoiceDate   string // DD/MM/YYYY
	CustomerName  string
	Rows          []RowView
	Total         string
}

// RowView is one table row: particulars, unit price, quantity, amount.
type RowView struct {
	Description string
	UnitPrice   string
	Quantity    string
	Amount      string
}

// DocumentRenderer turns an InvoiceView into printable document bytes.
type DocumentRenderer interface {
	Render(view InvoiceView) ([]byte, error)
}

// PreviewRenderer turns an InvoiceView into an HTML page.
type PreviewRenderer interface {
	RenderHTML(view InvoiceView) (string, error)
}

// BuildInvoiceView assembles display strings for header and items. The grand total is
// recomputed from items here, never taken from a cached value.
func BuildInvoiceView(business Business, header InvoiceHeader, items []LineItem) (InvoiceView, error) {
	if len(items) == 0 {
		return InvoiceView{}, ErrEmptyInvoice
	}

	rows := make([]RowView, 0, len(items))
	for _, it := range items {
		rows = append(rows, RowView{
			Description: it.Description,
			UnitPrice:   FormatINR(it.UnitPrice),
			Quantity:    strconv.Itoa(it.Quantity),
			Amount:      FormatINR(it.Amount),
		})
	}

	return InvoiceView{
		Business:      business,
		InvoiceNumber: header.Number,
		InvoiceDate:   header.FormattedDate(),
		CustomerName:  header.CustomerName,
		Rows:          rows,
		Total:         FormatINR(SumAmounts(items)),
	}, nil
}
