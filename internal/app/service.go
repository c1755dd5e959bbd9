package app

import (
	"context"

	"invoice-generator/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web) call.
// Drafts are owned by the caller and passed in explicitly; the service keeps no
// per-draft state. Implementations contain no display logic.
type ApplicationService interface {
	// Business returns the organisation identity printed on every invoice.
	Business() core.Business

	// NewDraft returns an empty draft dated today with the default invoice number.
	NewDraft() *core.Invoice

	// AddItem validates the request and appends a line item to draft.
	AddItem(ctx context.Context, draft *core.Invoice, req AddItemRequest) (*DraftResult, error)

	// RemoveItem removes the line item at the 0-based index.
	RemoveItem(ctx context.Context, draft *core.Invoice, index int) (*DraftResult, error)

	// UpdateHeader replaces the invoice number, date and customer name of draft.
	// A blank date means today.
	UpdateHeader(ctx context.Context, draft *core.Invoice, req HeaderRequest) (*DraftResult, error)

	// GenerateInvoice renders draft to PDF. Returns core.ErrEmptyInvoice when draft has no items.
	GenerateInvoice(ctx context.Context, draft *core.Invoice) (*InvoiceDocumentResult, error)

	// PreviewInvoice renders draft to HTML.
	PreviewInvoice(ctx context.Context, draft *core.Invoice) (*InvoicePreviewResult, error)

	// RenderInvoice is the one-shot path: header and items arrive in one request.
	RenderInvoice(ctx context.Context, req RenderInvoiceRequest) (*InvoiceDocumentResult, error)
}
