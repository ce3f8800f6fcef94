// Package money formats the dollar amounts shown on cards and the donation
// progress bar.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders amount as dollars with digit grouping. Whole amounts drop
// the cents: 1250 -> "$1,250", 12.5 -> "$12.50".
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := math.Round(amount * 100)
	if math.Mod(cents, 100) == 0 {
		return sign + printer.Sprintf("$%.0f", cents/100)
	}
	return sign + printer.Sprintf("$%.2f", cents/100)
}

// Price renders an event price. Zero and negative prices are free.
func Price(p float64) string {
	if !(p > 0) {
		return "Free"
	}
	return Format(p)
}
