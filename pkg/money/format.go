package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders integer amounts with grouping for a locale.
type Formatter struct {
	printer *message.Printer
	prefix  string
	suffix  string
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithPrefix sets text placed before the number, e.g. "₩".
func WithPrefix(s string) FormatterOption {
	return func(f *Formatter) { f.prefix = s }
}

// WithSuffix sets text placed after the number, e.g. "원".
func WithSuffix(s string) FormatterOption {
	return func(f *Formatter) { f.suffix = s }
}

// NewFormatter creates a Formatter for the given locale.
func NewFormatter(tag language.Tag, opts ...FormatterOption) Formatter {
	f := Formatter{printer: message.NewPrinter(tag)}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Won formats amounts the way the storefront displays them: "15,000원".
var Won = NewFormatter(language.Korean, WithSuffix("원"))

// Format renders amount with digit grouping.
func (f Formatter) Format(amount int64) string {
	return f.prefix + f.printer.Sprintf("%d", amount) + f.suffix
}

// FormatCurrency renders amount (in whole currency units) with the currency symbol for tag.
func FormatCurrency(tag language.Tag, unit currency.Unit, amount int64) string {
	return message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(amount)))
}
