package currency

import (
	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// Formatter renders monetary amounts for a configured display locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a formatter for the given BCP 47 locale. Unknown
// locales fall back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders the amount with the currency symbol for the locale.
// Unknown currency codes fall back to "<amount> <code>".
func (f *Formatter) Format(amount decimal.Decimal, code enums.Currency) string {
	unit, err := xcurrency.ParseISO(code.String())
	if err != nil {
		return amount.StringFixed(2) + " " + code.String()
	}
	value, _ := amount.Float64()
	return f.printer.Sprintf("%v", xcurrency.Symbol(unit.Amount(value)))
}
