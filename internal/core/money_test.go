package core_test

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"invoice-generator/internal/core"

	"github.com/shopspring/decimal"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"7", "7.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"10000", "10,000.00"},
		{"100000", "1,00,000.00"},
		{"1234567", "12,34,567.00"},
		{"12345678.9", "1,23,45,678.90"},
		{"123456789012.34", "1,23,45,67,89,012.34"},
		{"1.5", "1.50"},
		{"0.004", "0.00"},
		{"0.005", "0.01"},
		{"1500.00", "1,500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := core.FormatINR(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("FormatINR(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Rounding that carries out of the fraction must be regrouped.
func TestFormatINR_RoundingCarryBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"999.994", "999.99"},
		{"999.995", "1,000.00"},
		{"99999.995", "1,00,000.00"},
		{"9999999.999", "1,00,00,000.00"},
		{"0.995", "1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := core.FormatINR(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("FormatINR(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatINRFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{100000, "1,00,000.00"},
		{12345678.9, "1,23,45,678.90"},
		{999.995, "1,000.00"},
	}
	for _, tt := range tests {
		if got := core.FormatINRFloat(tt.in); got != tt.want {
			t.Errorf("FormatINRFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatINR_Negative(t *testing.T) {
	if got := core.FormatINR(decimal.RequireFromString("-1234.5")); got != "-1,234.50" {
		t.Errorf("got %q", got)
	}
	if got := core.FormatINR(decimal.RequireFromString("-0.001")); got != "0.00" {
		t.Errorf("negative value rounding to zero: got %q", got)
	}
}

func TestFormatINR_Shape(t *testing.T) {
	grouped := regexp.MustCompile(`^[0-9]{1,3}(,[0-9]{2})*,?[0-9]{3}\.[0-9]{2}$`)
	plain := regexp.MustCompile(`^[0-9]{1,3}\.[0-9]{2}$`)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		cents := rng.Int63n(1_000_000_000_000)
		d := decimal.New(cents, -2)
		got := core.FormatINR(d)

		if !grouped.MatchString(got) && !plain.MatchString(got) {
			t.Fatalf("FormatINR(%s) = %q has unexpected shape", d, got)
		}
		if strings.ReplaceAll(got, ",", "") != d.StringFixed(2) {
			t.Fatalf("FormatINR(%s) = %q changes the digits", d, got)
		}
		intPart, _, _ := strings.Cut(got, ".")
		groups := strings.Split(intPart, ",")
		if len(groups) > 1 {
			if len(groups[len(groups)-1]) != 3 {
				t.Fatalf("FormatINR(%s) = %q: last group must have 3 digits", d, got)
			}
			for _, g := range groups[1 : len(groups)-1] {
				if len(g) != 2 {
					t.Fatalf("FormatINR(%s) = %q: middle groups must have 2 digits", d, got)
				}
			}
			if l := len(groups[0]); l < 1 || l > 2 {
				t.Fatalf("FormatINR(%s) = %q: leading group must have 1 or 2 digits", d, got)
			}
		}
	}
}
