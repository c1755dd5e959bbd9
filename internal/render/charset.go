package render

import (
	"fmt"
	"log"

	"golang.org/x/text/encoding/charmap"
)

// CheckPrintable reports an error when s holds characters outside code page 1252,
// the only code page the built-in PDF fonts cover. Such characters print as ".".
func CheckPrintable(s string) error {
	if _, err := charmap.Windows1252.NewEncoder().String(s); err != nil {
		return fmt.Errorf("%q has characters the PDF fonts cannot print", s)
	}
	return nil
}

// translator wraps gofpdf's code page translation and logs, once per render, text
// that will lose characters.
func translator(tr func(string) string, invoice string) func(string) string {
	warned := false
	return func(s string) string {
		if !warned {
			if err := CheckPrintable(s); err != nil {
				log.Printf("invoice %s: %v; they print as '.'", invoice, err)
				warned = true
			}
		}
		return tr(s)
	}
}
