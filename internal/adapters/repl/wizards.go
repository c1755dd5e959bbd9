package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"

	"github.com/shopspring/decimal"
)

// readLine prompts and reads one trimmed line. ok is false when input has ended.
func readLine(reader *bufio.Reader, out io.Writer, prompt string) (string, bool) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", false
	}
	return line, true
}

// handleHeader asks for the invoice number, date and customer name.
// Blank answers keep the current value. A nil result means nothing was saved.
func handleHeader(ctx context.Context, reader *bufio.Reader, out io.Writer, svc app.ApplicationService, draft *core.Invoice) (*app.DraftResult, bool) {
	current := draft.Header()

	number, ok := readLine(reader, out, fmt.Sprintf("Invoice number [%s]: ", current.Number))
	if !ok {
		return nil, false
	}
	if number == "" {
		number = current.Number
	}

	date, ok := readLine(reader, out, fmt.Sprintf("Invoice date YYYY-MM-DD [%s]: ", current.Date.Format("2006-01-02")))
	if !ok {
		return nil, false
	}
	if date == "" {
		date = current.Date.Format("2006-01-02")
	}

	customer, ok := readLine(reader, out, fmt.Sprintf("Customer name [%s]: ", current.CustomerName))
	if !ok {
		return nil, false
	}
	if customer == "" {
		customer = current.CustomerName
	}

	res, err := svc.UpdateHeader(ctx, draft, app.HeaderRequest{
		InvoiceNumber: number,
		InvoiceDate:   date,
		CustomerName:  customer,
	})
	if err != nil {
		fmt.Fprintf(out, "  %v. Header not changed.\n", err)
		return nil, true
	}
	return res, true
}

// handleAddItem runs the add-item form. A blank description abandons the form
// without adding anything.
func handleAddItem(ctx context.Context, reader *bufio.Reader, out io.Writer, svc app.ApplicationService, draft *core.Invoice, currencyLabel string) (*app.DraftResult, bool) {
	desc, ok := readLine(reader, out, "  Particulars: ")
	if !ok {
		return nil, false
	}
	if desc == "" {
		fmt.Fprintln(out, "  No particulars entered. Item not added.")
		return nil, true
	}

	var price decimal.Decimal
	for {
		raw, ok := readLine(reader, out, fmt.Sprintf("  Price per item (%s): ", currencyLabel))
		if !ok {
			return nil, false
		}
		p, err := decimal.NewFromString(raw)
		if err != nil || p.IsNegative() {
			fmt.Fprintln(out, "  Invalid price. Enter a non-negative number, e.g. 1500.00")
			continue
		}
		price = p
		break
	}

	qty := 1
	for {
		raw, ok := readLine(reader, out, "  Quantity [1]: ")
		if !ok {
			return nil, false
		}
		if raw == "" {
			break
		}
		q, err := strconv.Atoi(raw)
		if err != nil || q < 1 {
			fmt.Fprintln(out, "  Invalid quantity. Enter a whole number of at least 1.")
			continue
		}
		qty = q
		break
	}

	res, err := svc.AddItem(ctx, draft, app.AddItemRequest{Description: desc, UnitPrice: price, Quantity: qty})
	if err != nil {
		fmt.Fprintf(out, "  %v. Item not added.\n", err)
		return nil, true
	}
	return res, true
}
