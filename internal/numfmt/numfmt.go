// Package numfmt formats numbers for chart annotations and report tables.
//
// Counts use '.' as the thousands separator (Indonesian grouping) regardless
// of the report locale. Exported CSV files never go through this package.
package numfmt

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Count formats n with '.' thousands separators: 12345 -> "12.345"
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats a fraction with one decimal: 0.6667 -> "66.7%"
func Percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
