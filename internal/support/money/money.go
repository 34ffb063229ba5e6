// Package money formats satang amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Thai)

// FormatSatang renders an amount held in satang (1/100 THB) as a baht
// string with a currency sign, e.g. 12550 -> "฿125.50".
func FormatSatang(amount int64) string {
	baht := amount / 100
	satang := amount % 100
	if satang < 0 {
		satang = -satang
	}
	return printer.Sprintf("฿%d.%02d", baht, satang)
}
