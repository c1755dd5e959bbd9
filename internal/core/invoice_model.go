package core

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultInvoiceNumber is used when the invoice number field is left blank.
const DefaultInvoiceNumber = "001"

// LineItem is one invoice row. Amount is derived at construction and never recomputed,
// so a LineItem is immutable once added to an Invoice.
type LineItem struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewLineItem validates user input and builds a LineItem.
// The description is trimmed and title-cased; Amount = round(price × quantity, 2).
func NewLineItem(description string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	desc := titleCase(description)
	if desc == "" {
		return LineItem{}, ErrEmptyDescription
	}
	if unitPrice.IsNegative() {
		return LineItem{}, fmt.Errorf("%w: %s", ErrNegativePrice, unitPrice.String())
	}
	if quantity < 1 {
		return LineItem{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	return LineItem{
		Description: desc,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}, nil
}

// InvoiceHeader holds the per-document fields printed above the item table.
type InvoiceHeader struct {
	Number       string    `json:"invoice_number"`
	Date         time.Time `json:"invoice_date"`
	CustomerName string    `json:"customer_name"`
}

// NewInvoiceHeader trims the invoice number (blank → DefaultInvoiceNumber) and
// title-cases the customer name.
func NewInvoiceHeader(number string, date time.Time, customerName string) InvoiceHeader {
	number = strings.TrimSpace(number)
	if number == "" {
		number = DefaultInvoiceNumber
	}
	return InvoiceHeader{
		Number:       number,
		Date:         date,
		CustomerName: titleCase(customerName),
	}
}

// FormattedDate returns the invoice date as DD/MM/YYYY.
func (h InvoiceHeader) FormattedDate() string {
	return h.Date.Format("02/01/2006")
}

// FileName is the download name for the rendered document: Invoice_<number>.pdf.
func (h InvoiceHeader) FileName() string {
	return "Invoice_" + h.Number + ".pdf"
}

// SafeFileName turns name into a single path element for writing to disk. Path
// separators and control characters become "_" and any ".." is broken up, so the
// result always names a file inside the current directory.
func SafeFileName(name string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, name)
	for strings.Contains(safe, "..") {
		safe = strings.ReplaceAll(safe, "..", "_")
	}
	if safe == "" || safe == "." {
		return "_"
	}
	return safe
}

// Business is the fixed organisation identity printed on every invoice.
type Business struct {
	Name          string
	Address       string
	Email         string
	Phones        []string
	LogoRef       string // relative reference, resolved at render time; empty omits the logo
	FooterMessage string
	CurrencyLabel string
}

// DefaultBusiness returns the identity used when nothing is configured.
func DefaultBusiness() Business {
	return Business{
		Name:          "Glimmer and Grace",
		Address:       "Mumbai, India",
		Email:         "glimmerandgrace.india@gmail.com",
		Phones:        []string{"+91 9702060534", "+91 9819759104"},
		LogoRef:       "logo.png",
		FooterMessage: "Thank you for allowing us to craft your timeless elegance!",
		CurrencyLabel: "Rs.",
	}
}

// Invoice is a caller-owned draft: a header plus line items in insertion order.
// It is not safe for concurrent use; adapters that share drafts must serialise access.
type Invoice struct {
	header InvoiceHeader
	items  []LineItem
}

// NewInvoice creates an empty draft with the given header.
func NewInvoice(header InvoiceHeader) *Invoice {
	return &Invoice{header: header}
}

func (inv *Invoice) Header() InvoiceHeader { return inv.header }

func (inv *Invoice) SetHeader(h InvoiceHeader) { inv.header = h }

// Append adds item at the end of the list.
func (inv *Invoice) Append(item LineItem) {
	inv.items = append(inv.items, item)
}

// Remove deletes the item at the 0-based index and returns it.
func (inv *Invoice) Remove(index int) (LineItem, error) {
	if index < 0 || index >= len(inv.items) {
		return LineItem{}, fmt.Errorf("%w: index %d (have %d items)", ErrItemNotFound, index, len(inv.items))
	}
	removed := inv.items[index]
	inv.items = append(inv.items[:index], inv.items[index+1:]...)
	return removed, nil
}

// Items returns a copy of the line items in display order.
func (inv *Invoice) Items() []LineItem {
	out := make([]LineItem, len(inv.items))
	copy(out, inv.items)
	return out
}

func (inv *Invoice) Len() int { return len(inv.items) }

// Total sums the current item amounts. It is computed on every call.
func (inv *Invoice) Total() decimal.Decimal {
	return SumAmounts(inv.items)
}

// Reset drops all line items and keeps the header.
func (inv *Invoice) Reset() {
	inv.items = nil
}

// SumAmounts adds up the Amount of every item.
func SumAmounts(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// titleCase trims s and capitalises each word. A Caser holds state, so one is
// created per call.
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.Und).String(s)
}
