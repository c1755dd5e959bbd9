package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"invoice-generator/internal/app"
	webui "invoice-generator/web"

	"github.com/go-chi/chi/v5"
)

// Options configures the HTTP handler.
type Options struct {
	AllowedOrigins string        // comma-separated CORS allow-list; empty disables CORS
	AssetsDir      string        // served at /assets/, holds the logo
	DraftTTL       time.Duration // idle lifetime of a browser draft
}

// Handler holds the ApplicationService, the chi router, and the draft store.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	drafts     *draftStore
	pages      *template.Template
	fileServer http.Handler
	assets     http.Handler
}

// NewHandler creates and wires the chi router with all routes. The draft purge
// goroutine stops when ctx is done.
func NewHandler(ctx context.Context, svc app.ApplicationService, opts Options) http.Handler {
	staticFS, err := fs.Sub(webui.FS, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}
	pages := template.Must(template.ParseFS(webui.FS, "templates/*.html"))

	ttl := opts.DraftTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	assetsDir := opts.AssetsDir
	if assetsDir == "" {
		assetsDir = "."
	}

	h := &Handler{
		svc:        svc,
		drafts:     newDraftStore(ttl),
		pages:      pages,
		fileServer: http.FileServer(http.FS(staticFS)),
		assets:     http.FileServer(http.Dir(assetsDir)),
	}
	h.drafts.startPurge(ctx, purgeInterval(ttl))

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(opts.AllowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Static files ──────────────────────────────────────────────────────────
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})
	r.Get("/assets/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/assets", h.assets).ServeHTTP(w, req)
	})

	// ── Browser form ──────────────────────────────────────────────────────────
	r.Get("/", h.formPage)
	r.Post("/header", h.saveHeaderAction)
	r.Post("/items", h.addItemAction)
	r.Post("/items/{index}/delete", h.removeItemAction)
	r.Post("/clear", h.clearAction)
	r.Post("/generate", h.generateAction)
	r.Get("/preview", h.previewPage)

	// ── JSON API ──────────────────────────────────────────────────────────────
	r.Post("/api/invoices/render", h.apiRenderInvoice)
	r.Get("/api/invoices/schema", h.apiSchema)

	h.router = r
	return r
}

// purgeInterval sweeps a few times per TTL, but not more than once a minute.
func purgeInterval(ttl time.Duration) time.Duration {
	if iv := ttl / 4; iv > time.Minute {
		return iv
	}
	return time.Minute
}

// health returns service status and the business name in use.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status   string `json:"status"`
		Business string `json:"business"`
	}
	writeJSON(w, response{Status: "ok", Business: h.svc.Business().Name})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
