package web

import (
	"bytes"
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
	"invoice-generator/web/templates/layouts"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const emptyInvoiceWarning = "Add at least one item."

// draftFor returns the caller's draft, creating one (and its cookie) when the
// cookie is missing or the draft has expired.
func (h *Handler) draftFor(w http.ResponseWriter, r *http.Request) *draftEntry {
	if c, err := r.Cookie(draftCookie); err == nil {
		if e, ok := h.drafts.get(c.Value); ok {
			return e
		}
	}
	id, e := h.drafts.create(h.svc.NewDraft())
	http.SetCookie(w, &http.Cookie{
		Name:     draftCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return e
}

// ── Form page ─────────────────────────────────────────────────────────────────

// formPage handles GET / and renders the invoice form for the caller's draft.
func (h *Handler) formPage(w http.ResponseWriter, r *http.Request) {
	e := h.draftFor(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()
	kind, msg := e.takeFlash()
	h.renderForm(w, e, http.StatusOK, kind, msg)
}

// renderForm writes the form page with the given status and flash. Callers hold e.mu.
func (h *Handler) renderForm(w http.ResponseWriter, e *draftEntry, status int, flashKind, flashMsg string) {
	business := h.svc.Business()
	inv := e.invoice
	header := inv.Header()

	data := layouts.FormPageData{
		Title:         business.Name + " - Invoice Generator",
		BusinessName:  business.Name,
		CurrencyLabel: business.CurrencyLabel,
		InvoiceNumber: header.Number,
		InvoiceDate:   header.Date.Format("2006-01-02"),
		CustomerName:  header.CustomerName,
		Total:         core.FormatINR(inv.Total()),
		FlashMsg:      flashMsg,
		FlashKind:     flashKind,
	}
	for i, it := range inv.Items() {
		data.Items = append(data.Items, layouts.ItemRow{
			Index:       i,
			Number:      i + 1,
			Description: it.Description,
			UnitPrice:   core.FormatINR(it.UnitPrice),
			Quantity:    it.Quantity,
			Amount:      core.FormatINR(it.Amount),
		})
	}

	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, "form.html", data); err != nil {
		log.Printf("render form: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// redirectHome finishes a form action with a 303 back to the form.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// flashServiceError queues err for display. Input errors are shown as they are;
// anything else is logged and replaced by a generic message. Callers hold e.mu.
func flashServiceError(r *http.Request, e *draftEntry, err error) {
	if core.IsValidationError(err) || errors.Is(err, core.ErrEmptyInvoice) {
		e.setFlash("error", err.Error())
		return
	}
	log.Printf("request %s: %v", requestIDFromContext(r.Context()), err)
	e.setFlash("error", "Something went wrong. Please try again.")
}

func headerFromForm(r *http.Request) app.HeaderRequest {
	return app.HeaderRequest{
		InvoiceNumber: r.FormValue("invoice_number"),
		InvoiceDate:   r.FormValue("invoice_date"),
		CustomerName:  r.FormValue("customer_name"),
	}
}

// ── Form actions ──────────────────────────────────────────────────────────────

// saveHeaderAction handles POST /header.
func (h *Handler) saveHeaderAction(w http.ResponseWriter, r *http.Request) {
	e := h.draftFor(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := h.svc.UpdateHeader(r.Context(), e.invoice, headerFromForm(r)); err != nil {
		flashServiceError(r, e, err)
	} else {
		e.setFlash("success", "Invoice details saved.")
	}
	redirectHome(w, r)
}

// addItemAction handles POST /items.
func (h *Handler) addItemAction(w http.ResponseWriter, r *http.Request) {
	e := h.draftFor(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()

	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("unit_price")))
	if err != nil {
		e.setFlash("error", "Price must be a number, e.g. 1500.00.")
		redirectHome(w, r)
		return
	}
	qty := 1
	if raw := strings.TrimSpace(r.FormValue("quantity")); raw != "" {
		if qty, err = strconv.Atoi(raw); err != nil {
			e.setFlash("error", "Quantity must be a whole number.")
			redirectHome(w, r)
			return
		}
	}

	res, err := h.svc.AddItem(r.Context(), e.invoice, app.AddItemRequest{
		Description: r.FormValue("description"),
		UnitPrice:   price,
		Quantity:    qty,
	})
	if err != nil {
		flashServiceError(r, e, err)
	} else {
		added := res.Items[len(res.Items)-1]
		e.setFlash("success", "Added "+added.Description+".")
	}
	redirectHome(w, r)
}

// removeItemAction handles POST /items/{index}/delete.
func (h *Handler) removeItemAction(w http.ResponseWriter, r *http.Request) {
	e := h.draftFor(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		e.setFlash("error", "Unknown item.")
		redirectHome(w, r)
		return
	}
	if _, err := h.svc.RemoveItem(r.Context(), e.invoice, index); err != nil {
		flashServiceError(r, e, err)
	} else {
		e.setFlash("success", "Item removed.")
	}
	redirectHome(w, r)
}

// clearAction handles POST /clear. It drops every item and keeps the header.
func (h *Handler) clearAction(w http.ResponseWriter, r *http.Request) {
	e := h.draftFor(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.invoice.Reset()
	e.setFlash("success", "All items removed.")
	redirectHome(w, r)
}

// generateAction handles POST /generate. It saves the posted header fields and
// responds with the PDF as a download.
func (h *Handler) generateAction(w http.ResponseWriter, r *http.Request) {
	e := h.draftFor(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := h.svc.UpdateHeader(r.Context(), e.invoice, headerFromForm(r)); err != nil {
		if core.IsValidationError(err) {
			h.renderForm(w, e, http.StatusBadRequest, "error", err.Error())
			return
		}
		log.Printf("request %s: %v", requestIDFromContext(r.Context()), err)
		h.renderForm(w, e, http.StatusInternalServerError, "error", "Could not save the invoice details.")
		return
	}

	res, err := h.svc.GenerateInvoice(r.Context(), e.invoice)
	if errors.Is(err, core.ErrEmptyInvoice) {
		h.renderForm(w, e, http.StatusUnprocessableEntity, "warning", emptyInvoiceWarning)
		return
	}
	if err != nil {
		log.Printf("request %s: %v", requestIDFromContext(r.Context()), err)
		h.renderForm(w, e, http.StatusInternalServerError, "error", "Could not generate the invoice.")
		return
	}
	writeDocument(w, res)
}

// previewPage handles GET /preview with the HTML rendering of the caller's draft.
func (h *Handler) previewPage(w http.ResponseWriter, r *http.Request) {
	e := h.draftFor(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := h.svc.PreviewInvoice(r.Context(), e.invoice)
	if errors.Is(err, core.ErrEmptyInvoice) {
		h.renderForm(w, e, http.StatusUnprocessableEntity, "warning", emptyInvoiceWarning)
		return
	}
	if err != nil {
		log.Printf("request %s: %v", requestIDFromContext(r.Context()), err)
		h.renderForm(w, e, http.StatusInternalServerError, "error", "Could not build the preview.")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(res.HTML))
}

// writeDocument sends a rendered invoice as an attachment named after its number.
func writeDocument(w http.ResponseWriter, res *app.InvoiceDocumentResult) {
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	_, _ = w.Write(res.PDF)
}
