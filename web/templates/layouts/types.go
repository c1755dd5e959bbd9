package layouts

// FormPageData is passed to the invoice form page.
type FormPageData struct {
	Title         string
	BusinessName  string
	CurrencyLabel string
	InvoiceNumber string
	InvoiceDate   string // YYYY-MM-DD, the value of the date input
	CustomerName  string
	Items         []ItemRow
	Total         string
	FlashMsg      string
	FlashKind     string // "success", "error", "warning"
}

// ItemRow is one row of the items table. Index is the 0-based position used in
// the delete action; Number is what the user sees.
type ItemRow struct {
	Index       int
	Number      int
	Description string
	UnitPrice   string
	Quantity    int
	Amount      string
}
