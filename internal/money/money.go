// Package money formats integer minor-unit amounts for display.
package money

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults match the storefront's home market.
const (
	DefaultLocale   = "pt-BR"
	DefaultCurrency = "BRL"
	DefaultSymbol   = "R$"
)

// Formatter renders cents as a localized major-unit string such as "R$ 12,34".
// Formatter is immutable and safe for concurrent use.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	symbol  string
}

// NewFormatter builds a Formatter for a BCP 47 locale and ISO 4217 currency code.
// An empty symbol falls back to the ISO code.
func NewFormatter(locale, code, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	if symbol == "" {
		symbol = unit.String()
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		symbol:  symbol,
	}, nil
}

// Default returns the pt-BR / BRL formatter.
func Default() *Formatter {
	f, err := NewFormatter(DefaultLocale, DefaultCurrency, DefaultSymbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Format converts cents to major units with two decimals, using the
// locale's digit grouping and decimal separator. The symbol is followed by
// an ASCII space.
func (f *Formatter) Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	major := float64(cents) / 100
	return sign + f.symbol + " " + f.printer.Sprintf("%.2f", major)
}

// Currency returns the ISO 4217 code this formatter renders.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
