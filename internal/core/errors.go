package core

import "errors"

var (
	// ErrEmptyInvoice is returned when a document is requested for a draft with no line items.
	ErrEmptyInvoice = errors.New("empty invoice: add at least one item")

	ErrEmptyDescription = errors.New("item description is required")
	ErrNegativePrice    = errors.New("unit price must not be negative")
	ErrInvalidQuantity  = errors.New("quantity must be a positive whole number")
	ErrItemNotFound     = errors.New("line item not found")
	ErrInvalidDate      = errors.New("invoice date must be in YYYY-MM-DD format")
)

// IsValidationError reports whether err stems from bad user input rather than a
// rendering failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrInvalidDate)
}
