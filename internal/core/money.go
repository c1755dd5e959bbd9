package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders amount with two decimal places and South Asian digit grouping:
// the last three integer digits form one group and the remaining digits are grouped
// in pairs, e.g. 12345678.9 → "1,23,45,678.90".
//
// Rounding is half away from zero and happens before grouping, so a carry out of the
// fraction lands in the grouped digits (999.995 → "1,000.00"). Negative amounts are
// outside the invoice domain; they render as the grouped absolute value with a "-" prefix.
func FormatINR(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	out := groupIndian(intPart) + "." + frac
	if amount.IsNegative() && fixed != "0.00" {
		return "-" + out
	}
	return out
}

// FormatINRFloat is FormatINR for float inputs. The float is converted through its
// shortest decimal representation, so 999.995 is treated as written.
func FormatINRFloat(f float64) string {
	return FormatINR(decimal.NewFromFloat(f))
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, last3 := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(last3)
	return b.String()
}
