package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"invoice-generator/internal/core"
)

//go:embed templates/invoice.html
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html"))

// HTMLRenderer fills the invoice HTML template. It is used for previews; the logo
// reference goes through the resolver so callers decide how the browser reaches it.
type HTMLRenderer struct {
	resolve ResourceResolver
}

func NewHTMLRenderer(resolve ResourceResolver) *HTMLRenderer {
	return &HTMLRenderer{resolve: resolve}
}

type htmlData struct {
	View    core.InvoiceView
	LogoSrc string
	Phones  string
}

// RenderHTML executes the template for view. Empty views are refused like the PDF path.
func (r *HTMLRenderer) RenderHTML(view core.InvoiceView) (string, error) {
	if len(view.Rows) == 0 {
		return "", core.ErrEmptyInvoice
	}

	data := htmlData{
		View:   view,
		Phones: strings.Join(view.Business.Phones, " / "),
	}
	if ref := view.Business.LogoRef; ref != "" {
		src, err := r.resolve(ref)
		if err != nil {
			return "", fmt.Errorf("resolve logo: %w", err)
		}
		data.LogoSrc = src
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
