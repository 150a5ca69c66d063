// Package currency formats monetary amounts for documents and dashboards.
// The formatter is built once from settings and passed to its consumers
// explicitly; there is no process-global accessor.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders decimal amounts with a currency symbol and thousands
// separators.
type Formatter struct {
	Code   string
	symbol string
}

// symbols maps the currency codes the dealership deals in. Unknown codes fall
// back to the code itself as prefix.
var symbols = map[string]string{
	"MGA": "Ar",
	"USD": "$",
	"EUR": "€",
}

func NewFormatter(code string) *Formatter {
	sym, ok := symbols[strings.ToUpper(code)]
	if !ok {
		sym = strings.ToUpper(code)
	}
	return &Formatter{Code: strings.ToUpper(code), symbol: sym}
}

func (f *Formatter) Symbol() string { return f.symbol }

// Format renders "Ar 15,000,000" style output. Ariary carries no decimal
// places; other currencies keep two.
func (f *Formatter) Format(amount decimal.Decimal) string {
	places := int32(2)
	if f.Code == "MGA" {
		places = 0
	}
	return f.symbol + " " + group(amount.StringFixed(places))
}

// group inserts thousands separators into a fixed-point decimal string.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
