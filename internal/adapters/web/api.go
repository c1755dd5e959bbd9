package web

import (
	"net/http"

	"invoice-generator/internal/app"
)

// apiRenderInvoice handles POST /api/invoices/render: a complete invoice in one
// JSON document, answered with the PDF.
func (h *Handler) apiRenderInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.RenderInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.RenderInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeDocument(w, res)
}

// apiSchema handles GET /api/invoices/schema.
func (h *Handler) apiSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, app.RenderRequestSchema())
}
