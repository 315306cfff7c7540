// Package money formats VND amounts for display. Rounding happens
// here and nowhere else; the calculators keep exact values.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Vietnamese)

// VND renders an amount as whole dong with locale digit grouping,
// e.g. 180000 -> "180.000 ₫".
func VND(amount float64) string {
	return printer.Sprintf("%v ₫", number.Decimal(math.Round(amount), number.MaxFractionDigits(0)))
}

// Percent renders a signed percentage with one decimal, e.g. "+50.0%".
func Percent(p float64) string {
	sign := ""
	if p > 0 {
		sign = "+"
	}
	return printer.Sprintf("%s%v%%", sign, number.Decimal(p, number.MaxFractionDigits(1), number.MinFractionDigits(1)))
}
