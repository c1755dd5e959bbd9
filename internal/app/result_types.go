package app

import (
	"invoice-generator/internal/core"

	"github.com/shopspring/decimal"
)

// DraftResult is returned by draft mutations.
type DraftResult struct {
	Header core.InvoiceHeader
	Items  []core.LineItem
	Total  decimal.Decimal
}

// InvoiceDocumentResult is the rendered invoice, handed to the caller for download.
type InvoiceDocumentResult struct {
	FileName    string
	ContentType string
	PDF         []byte
	Total       decimal.Decimal
	ItemCount   int
}

// InvoicePreviewResult is returned by PreviewInvoice.
type InvoicePreviewResult struct {
	HTML  string
	Total decimal.Decimal
}
