package repl

import (
	"fmt"
	"io"
	"strings"

	"invoice-generator/internal/core"

	"github.com/shopspring/decimal"
)

func printHeader(out io.Writer, h core.InvoiceHeader) {
	fmt.Fprintf(out, "  Invoice Number: %s\n", h.Number)
	fmt.Fprintf(out, "  Invoice Date:   %s\n", h.FormattedDate())
	fmt.Fprintf(out, "  Customer Name:  %s\n", h.CustomerName)
}

func printItems(out io.Writer, items []core.LineItem, total decimal.Decimal, currencyLabel string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 74))
	if len(items) == 0 {
		fmt.Fprintln(out, "  No items yet. Use /add to add one.")
		fmt.Fprintln(out, strings.Repeat("=", 74))
		return
	}
	fmt.Fprintf(out, "  %-4s %-30s %14s %5s %15s\n", "#", "PARTICULARS", "PRICE", "QTY", "AMOUNT")
	fmt.Fprintln(out, strings.Repeat("-", 74))
	for i, it := range items {
		desc := it.Description
		if r := []rune(desc); len(r) > 30 {
			desc = string(r[:27]) + "..."
		}
		fmt.Fprintf(out, "  %-4d %-30s %14s %5d %15s\n",
			i+1, desc,
			currencyLabel+" "+core.FormatINR(it.UnitPrice),
			it.Quantity,
			currencyLabel+" "+core.FormatINR(it.Amount),
		)
	}
	fmt.Fprintln(out, strings.Repeat("-", 74))
	fmt.Fprintf(out, "  %-55s %15s\n", "TOTAL", currencyLabel+" "+core.FormatINR(total))
	fmt.Fprintln(out, strings.Repeat("=", 74))
}

func printHelp(out io.Writer) {
	lines := []string{
		"",
		"INVOICE GENERATOR COMMANDS",
		strings.Repeat("=", 62),
		"",
		"  HEADER",
		"  /header                          Set invoice number, date, customer",
		"",
		"  ITEMS",
		"  /add                             Add an item (form)",
		"  /add <price> <qty> <particulars> Add an item in one line",
		"  /items                           List items with amounts",
		"  /remove <n>                      Remove item number n",
		"  /total                           Show the current total",
		"  /clear                           Remove all items",
		"",
		"  DOCUMENT",
		"  /generate [file]                 Write the PDF (default Invoice_<number>.pdf)",
		"  /preview  [file]                 Write an HTML preview",
		"",
		"  SESSION",
		"  /help                            Show this help",
		"  /exit                            Exit (the draft is discarded)",
		strings.Repeat("=", 62),
	}
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}
