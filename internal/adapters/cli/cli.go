package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"

	"github.com/shopspring/decimal"
	ucli "github.com/urfave/cli/v2"
)

// NewApp builds the command-line application. interactive runs when no subcommand
// is given. Commands read from app.Reader and write to app.Writer, so callers can
// swap both for tests.
func NewApp(svc app.ApplicationService, interactive ucli.ActionFunc) *ucli.App {
	return &ucli.App{
		Name:  "invoice",
		Usage: "build invoices and render them to PDF",
		Commands: []*ucli.Command{
			{
				Name:    "render",
				Aliases: []string{"r"},
				Usage:   "render an invoice JSON document read from stdin",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (- for stdout)"},
					&ucli.BoolFlag{Name: "html", Usage: "write an HTML preview instead of a PDF"},
				},
				Action: func(c *ucli.Context) error {
					return renderCommand(c, svc)
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON Schema of the render input",
				Action: func(c *ucli.Context) error {
					enc := json.NewEncoder(c.App.Writer)
					enc.SetIndent("", "  ")
					return enc.Encode(app.RenderRequestSchema())
				},
			},
			{
				Name:      "format",
				Aliases:   []string{"fmt"},
				Usage:     "format amounts with Indian digit grouping",
				ArgsUsage: "<amount>...",
				Action:    formatCommand,
			},
		},
		Action: interactive,
	}
}

func renderCommand(c *ucli.Context, svc app.ApplicationService) error {
	var req app.RenderInvoiceRequest
	if err := json.NewDecoder(c.App.Reader).Decode(&req); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	var (
		data []byte
		path string
	)
	if c.Bool("html") {
		res, name, err := previewRequest(c.Context, svc, req)
		if err != nil {
			return err
		}
		data, path = []byte(res.HTML), name
	} else {
		res, err := svc.RenderInvoice(c.Context, req)
		if err != nil {
			return err
		}
		data, path = res.PDF, core.SafeFileName(res.FileName)
	}

	if out := c.String("out"); out != "" {
		path = out
	}
	if path == "-" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(c.App.ErrWriter, "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

// previewRequest replays req onto a fresh draft and renders it as HTML. The returned
// name is the default output file for the preview.
func previewRequest(ctx context.Context, svc app.ApplicationService, req app.RenderInvoiceRequest) (*app.InvoicePreviewResult, string, error) {
	draft := svc.NewDraft()
	if _, err := svc.UpdateHeader(ctx, draft, req.HeaderRequest); err != nil {
		return nil, "", err
	}
	for i, it := range req.Items {
		if _, err := svc.AddItem(ctx, draft, it); err != nil {
			return nil, "", fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	res, err := svc.PreviewInvoice(ctx, draft)
	if err != nil {
		return nil, "", err
	}
	return res, core.SafeFileName(strings.TrimSuffix(draft.Header().FileName(), ".pdf") + ".html"), nil
}

func formatCommand(c *ucli.Context) error {
	if c.NArg() == 0 {
		return errors.New("usage: invoice format <amount>...")
	}
	for _, raw := range c.Args().Slice() {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid amount %q", raw)
		}
		fmt.Fprintln(c.App.Writer, core.FormatINR(amount))
	}
	return nil
}

// Interactive wraps a session runner as the default action, wired to the app's
// reader and writer.
func Interactive(run func(ctx context.Context, in io.Reader, out io.Writer)) ucli.ActionFunc {
	return func(c *ucli.Context) error {
		if c.NArg() > 0 {
			return fmt.Errorf("unknown command: %s", c.Args().First())
		}
		run(c.Context, c.App.Reader, c.App.Writer)
		return nil
	}
}
