package app

import "github.com/shopspring/decimal"

// AddItemRequest is the input for one line item.
type AddItemRequest struct {
	Description string          `json:"description" jsonschema:"minLength=1" jsonschema_description:"Particulars of the item; trimmed and title-cased"`
	UnitPrice   decimal.Decimal `json:"unit_price" jsonschema_description:"Price per item, non-negative, e.g. \"1500.00\""`
	Quantity    int             `json:"quantity" jsonschema:"minimum=1" jsonschema_description:"Number of units, at least 1"`
}

// HeaderRequest is the input for the invoice header fields.
type HeaderRequest struct {
	InvoiceNumber string `json:"invoice_number" jsonschema_description:"Free-text invoice number; blank means 001"`
	InvoiceDate   string `json:"invoice_date,omitempty" jsonschema:"format=date" jsonschema_description:"Invoice date in YYYY-MM-DD format; blank means today"`
	CustomerName  string `json:"customer_name" jsonschema_description:"Customer name; trimmed and title-cased"`
}

// RenderInvoiceRequest carries a complete invoice for one-shot rendering.
type RenderInvoiceRequest struct {
	HeaderRequest
	Items []AddItemRequest `json:"items" jsonschema:"minItems=1" jsonschema_description:"Line items in display order"`
}
