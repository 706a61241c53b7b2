package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders stored amounts with locale grouping. Stored values are
// never formatted.
type Formatter struct {
	tag      language.Tag
	printer  *message.Printer
	title    cases.Caser
	currency string
}

func NewFormatter(locale, currency string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{
		tag:      tag,
		printer:  message.NewPrinter(tag),
		title:    cases.Title(tag),
		currency: currency,
	}
}

// Amount formats with two decimals and grouping, e.g. 1,234,567.50.
func (f Formatter) Amount(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// WholeAmount drops the fraction, as dashboards do.
func (f Formatter) WholeAmount(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.Round(0).InexactFloat64(), number.Scale(0)))
}

func (f Formatter) Currency(d decimal.Decimal) string {
	if f.currency == "" {
		return f.Amount(d)
	}
	return f.currency + " " + f.Amount(d)
}

// Name title-cases a person's name for documents.
func (f Formatter) Name(name string) string {
	return f.title.String(name)
}
