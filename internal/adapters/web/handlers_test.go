package web_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"invoice-generator/internal/adapters/web"
	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
)

type stubRenderer struct{}

func (stubRenderer) Render(view core.InvoiceView) ([]byte, error) {
	return []byte("%PDF-stub " + view.InvoiceNumber + " " + view.Total), nil
}

func (stubRenderer) RenderHTML(view core.InvoiceView) (string, error) {
	return "<html>preview " + view.CustomerName + " " + view.Total + "</html>", nil
}

func newServer(t *testing.T, opts web.Options) *httptest.Server {
	t.Helper()
	now := func() time.Time { return time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC) }
	svc := app.NewAppService(core.DefaultBusiness(), stubRenderer{}, stubRenderer{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(web.NewHandler(ctx, svc, opts))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func postForm(t *testing.T, c *http.Client, u string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	return resp, readBody(t, resp)
}

func TestForm_AddAndRemoveItems(t *testing.T) {
	srv := newServer(t, web.Options{})
	c := newClient(t)

	resp, err := c.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Glimmer and Grace") || !strings.Contains(body, "No items yet.") {
		t.Errorf("unexpected form page:\n%s", body)
	}

	_, body = postForm(t, c, srv.URL+"/items", url.Values{
		"description": {"gold necklace"},
		"unit_price":  {"1500"},
		"quantity":    {"2"},
	})
	for _, want := range []string{"Added Gold Necklace.", "Gold Necklace", "3,000.00", "Total: Rs. 3,000.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("after add, page missing %q", want)
		}
	}

	_, body = postForm(t, c, srv.URL+"/items", url.Values{
		"description": {"silver ring"},
		"unit_price":  {"99999.5"},
		"quantity":    {"1"},
	})
	if !strings.Contains(body, "Total: Rs. 1,02,999.50") {
		t.Errorf("after second add, total missing:\n%s", body)
	}

	_, body = postForm(t, c, srv.URL+"/items/0/delete", nil)
	if !strings.Contains(body, "Item removed.") || strings.Contains(body, "Gold Necklace") {
		t.Errorf("after remove, page should drop the first item:\n%s", body)
	}
	if !strings.Contains(body, "Total: Rs. 99,999.50") {
		t.Errorf("total not recomputed after remove:\n%s", body)
	}

	_, body = postForm(t, c, srv.URL+"/clear", nil)
	if !strings.Contains(body, "All items removed.") || !strings.Contains(body, "No items yet.") {
		t.Errorf("after clear:\n%s", body)
	}
}

func TestForm_InvalidInputFlashes(t *testing.T) {
	srv := newServer(t, web.Options{})

	tests := []struct {
		name string
		path string
		form url.Values
		want string
	}{
		{"bad price", "/items", url.Values{"description": {"ring"}, "unit_price": {"abc"}, "quantity": {"1"}}, "Price must be a number"},
		{"bad quantity", "/items", url.Values{"description": {"ring"}, "unit_price": {"10"}, "quantity": {"1.5"}}, "Quantity must be a whole number."},
		{"zero quantity", "/items", url.Values{"description": {"ring"}, "unit_price": {"10"}, "quantity": {"0"}}, "quantity must be a positive whole number"},
		{"negative price", "/items", url.Values{"description": {"ring"}, "unit_price": {"-1"}, "quantity": {"1"}}, "unit price must not be negative"},
		{"blank description", "/items", url.Values{"description": {"  "}, "unit_price": {"1"}, "quantity": {"1"}}, "item description is required"},
		{"remove missing", "/items/5/delete", nil, "line item not found"},
		{"remove bad index", "/items/x/delete", nil, "Unknown item."},
		{"bad date", "/header", url.Values{"invoice_date": {"17/10/2026"}}, "invoice date must be in YYYY-MM-DD format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := postForm(t, newClient(t), srv.URL+tc.path, tc.form)
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status after redirect = %d", resp.StatusCode)
			}
			if !strings.Contains(body, tc.want) {
				t.Errorf("page missing %q:\n%s", tc.want, body)
			}
			if !strings.Contains(body, "flash-error") {
				t.Errorf("expected an error flash")
			}
		})
	}
}

func TestGenerate_EmptyDraftWarns(t *testing.T) {
	srv := newServer(t, web.Options{})

	resp, body := postForm(t, newClient(t), srv.URL+"/generate", url.Values{"invoice_number": {"9"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(body, "Add at least one item.") {
		t.Errorf("missing warning:\n%s", body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestGenerate_ReturnsPDFAttachment(t *testing.T) {
	srv := newServer(t, web.Options{})
	c := newClient(t)

	postForm(t, c, srv.URL+"/items", url.Values{"description": {"bangle"}, "unit_price": {"1200"}, "quantity": {"3"}})

	resp, body := postForm(t, c, srv.URL+"/generate", url.Values{
		"invoice_number": {"42"},
		"invoice_date":   {"2026-01-05"},
		"customer_name":  {"asha mehta"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	disp, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil || disp != "attachment" || params["filename"] != "Invoice_42.pdf" {
		t.Errorf("content disposition = %q", resp.Header.Get("Content-Disposition"))
	}
	if body != "%PDF-stub 42 3,600.00" {
		t.Errorf("body = %q", body)
	}

	// The header posted with /generate is kept on the draft.
	resp, err = c.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	page := readBody(t, resp)
	for _, want := range []string{`value="42"`, `value="2026-01-05"`, `value="Asha Mehta"`} {
		if !strings.Contains(page, want) {
			t.Errorf("form missing %s", want)
		}
	}
}

func TestPreview(t *testing.T) {
	srv := newServer(t, web.Options{})
	c := newClient(t)

	resp, err := c.Get(srv.URL + "/preview")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); resp.StatusCode != http.StatusUnprocessableEntity || !strings.Contains(body, "Add at least one item.") {
		t.Errorf("empty preview: status %d", resp.StatusCode)
	}

	postForm(t, c, srv.URL+"/items", url.Values{"description": {"pin"}, "unit_price": {"10"}, "quantity": {"1"}})
	resp, err = c.Get(srv.URL + "/preview")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); body != "<html>preview  10.00</html>" {
		t.Errorf("preview = %q", body)
	}
}

func TestDraftsAreIsolatedPerBrowser(t *testing.T) {
	srv := newServer(t, web.Options{})
	alice, bob := newClient(t), newClient(t)

	postForm(t, alice, srv.URL+"/items", url.Values{"description": {"ring"}, "unit_price": {"10"}, "quantity": {"1"}})

	resp, err := bob.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "No items yet.") {
		t.Errorf("second browser sees another draft's items")
	}
}

func TestAPIRender(t *testing.T) {
	srv := newServer(t, web.Options{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"ok", `{"invoice_number":"7","customer_name":"ravi","items":[{"description":"bangle","unit_price":"1200","quantity":3}]}`, http.StatusOK, ""},
		{"empty", `{"invoice_number":"7","items":[]}`, http.StatusUnprocessableEntity, "EMPTY_INVOICE"},
		{"bad quantity", `{"items":[{"description":"x","unit_price":"1","quantity":0}]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad date", `{"invoice_date":"tomorrow","items":[{"description":"x","unit_price":"1","quantity":1}]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad json", `{"items":`, http.StatusBadRequest, "BAD_REQUEST"},
		{"too large", `{"customer_name":"` + strings.Repeat("a", 1<<20) + `"}`, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/invoices/render", "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatal(err)
			}
			body := readBody(t, resp)
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tc.wantStatus, body)
			}
			if tc.wantCode == "" {
				if body != "%PDF-stub 7 3,600.00" {
					t.Errorf("body = %q", body)
				}
				if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, "Invoice_7.pdf") {
					t.Errorf("content disposition = %q", got)
				}
				return
			}
			var env struct {
				Error     string `json:"error"`
				Code      string `json:"code"`
				RequestID string `json:"request_id"`
			}
			if err := json.Unmarshal([]byte(body), &env); err != nil {
				t.Fatalf("error body is not JSON: %q", body)
			}
			if env.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", env.Code, tc.wantCode)
			}
			if env.RequestID == "" || env.RequestID != resp.Header.Get("X-Request-ID") {
				t.Errorf("request id %q does not match header %q", env.RequestID, resp.Header.Get("X-Request-ID"))
			}
		})
	}
}

func TestAPISchemaAndHealth(t *testing.T) {
	srv := newServer(t, web.Options{})

	resp, err := http.Get(srv.URL + "/api/invoices/schema")
	if err != nil {
		t.Fatal(err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(readBody(t, resp)), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, _ := schema["properties"].(map[string]any)
	if _, ok := props["items"]; !ok {
		t.Errorf("schema has no items property: %v", schema)
	}

	resp, err = http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	var health struct {
		Status   string `json:"status"`
		Business string `json:"business"`
	}
	if err := json.Unmarshal([]byte(readBody(t, resp)), &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Business != "Glimmer and Grace" {
		t.Errorf("health = %+v", health)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newServer(t, web.Options{})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("safe caller id should be kept, got %q", got)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	req.Header.Set("X-Request-ID", "<script>")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if got := resp.Header.Get("X-Request-ID"); got == "<script>" || got == "" {
		t.Errorf("unsafe caller id should be replaced, got %q", got)
	}
}

func TestAssetsAndStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := newServer(t, web.Options{AssetsDir: dir})

	resp, err := http.Get(srv.URL + "/assets/logo.png")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, resp); resp.StatusCode != http.StatusOK || body != "png-bytes" {
		t.Errorf("asset: status %d body %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/static/form.css")
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("static css status = %d", resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	srv := newServer(t, web.Options{AllowedOrigins: "https://shop.example, https://admin.example"})

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/invoices/render", nil)
	req.Header.Set("Origin", "https://admin.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://admin.example" {
		t.Errorf("allow origin = %q", got)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin should get no CORS headers, got %q", got)
	}
}
