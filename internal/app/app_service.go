package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"invoice-generator/internal/core"
)

const pdfContentType = "application/pdf"

type appService struct {
	business core.Business
	document core.DocumentRenderer
	preview  core.PreviewRenderer
	now      func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
// now is the clock used for default invoice dates; nil means time.Now.
func NewAppService(
	business core.Business,
	document core.DocumentRenderer,
	preview core.PreviewRenderer,
	now func() time.Time,
) ApplicationService {
	if now == nil {
		now = time.Now
	}
	return &appService{
		business: business,
		document: document,
		preview:  preview,
		now:      now,
	}
}

func (s *appService) Business() core.Business {
	return s.business
}

// NewDraft returns an empty draft dated today.
func (s *appService) NewDraft() *core.Invoice {
	return core.NewInvoice(core.NewInvoiceHeader(core.DefaultInvoiceNumber, s.today(), ""))
}

// AddItem validates the request and appends the resulting line item.
func (s *appService) AddItem(ctx context.Context, draft *core.Invoice, req AddItemRequest) (*DraftResult, error) {
	item, err := core.NewLineItem(req.Description, req.UnitPrice, req.Quantity)
	if err != nil {
		return nil, err
	}
	draft.Append(item)
	return draftResult(draft), nil
}

// RemoveItem removes the item at index (0-based).
func (s *appService) RemoveItem(ctx context.Context, draft *core.Invoice, index int) (*DraftResult, error) {
	if _, err := draft.Remove(index); err != nil {
		return nil, err
	}
	return draftResult(draft), nil
}

// UpdateHeader parses and normalises the header fields and stores them on draft.
func (s *appService) UpdateHeader(ctx context.Context, draft *core.Invoice, req HeaderRequest) (*DraftResult, error) {
	header, err := s.buildHeader(req)
	if err != nil {
		return nil, err
	}
	draft.SetHeader(header)
	return draftResult(draft), nil
}

// GenerateInvoice renders the current state of draft to PDF.
func (s *appService) GenerateInvoice(ctx context.Context, draft *core.Invoice) (*InvoiceDocumentResult, error) {
	return s.generate(draft.Header(), draft.Items())
}

// PreviewInvoice renders the current state of draft to HTML.
func (s *appService) PreviewInvoice(ctx context.Context, draft *core.Invoice) (*InvoicePreviewResult, error) {
	items := draft.Items()
	view, err := core.BuildInvoiceView(s.business, draft.Header(), items)
	if err != nil {
		return nil, err
	}
	html, err := s.preview.RenderHTML(view)
	if err != nil {
		return nil, err
	}
	return &InvoicePreviewResult{HTML: html, Total: core.SumAmounts(items)}, nil
}

// RenderInvoice validates every item of req and renders the invoice in one step.
// Item errors carry the 1-based position of the offending item.
func (s *appService) RenderInvoice(ctx context.Context, req RenderInvoiceRequest) (*InvoiceDocumentResult, error) {
	header, err := s.buildHeader(req.HeaderRequest)
	if err != nil {
		return nil, err
	}

	items := make([]core.LineItem, 0, len(req.Items))
	for i, in := range req.Items {
		item, err := core.NewLineItem(in.Description, in.UnitPrice, in.Quantity)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return s.generate(header, items)
}

func (s *appService) generate(header core.InvoiceHeader, items []core.LineItem) (*InvoiceDocumentResult, error) {
	view, err := core.BuildInvoiceView(s.business, header, items)
	if err != nil {
		return nil, err
	}
	pdf, err := s.document.Render(view)
	if err != nil {
		return nil, fmt.Errorf("generate invoice %s: %w", header.Number, err)
	}

	total := core.SumAmounts(items)
	log.Printf("invoice %s generated: %d items, total %s, %d bytes", header.Number, len(items), view.Total, len(pdf))

	return &InvoiceDocumentResult{
		FileName:    header.FileName(),
		ContentType: pdfContentType,
		PDF:         pdf,
		Total:       total,
		ItemCount:   len(items),
	}, nil
}

func (s *appService) buildHeader(req HeaderRequest) (core.InvoiceHeader, error) {
	date := s.today()
	if raw := strings.TrimSpace(req.InvoiceDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return core.InvoiceHeader{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, raw)
		}
		date = parsed
	}
	return core.NewInvoiceHeader(req.InvoiceNumber, date, req.CustomerName), nil
}

func (s *appService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func draftResult(draft *core.Invoice) *DraftResult {
	return &DraftResult{
		Header: draft.Header(),
		Items:  draft.Items(),
		Total:  draft.Total(),
	}
}
