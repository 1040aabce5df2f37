// Package format renders monetary and percentage figures for reports.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/swiftgentle/jobcost/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := NumericCurrency(amount)
	if strings.HasPrefix(formatted, "-") {
		return "-$" + formatted[1:]
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
// Amounts that round to zero never carry a sign.
func NumericCurrency(amount float64) string {
	rounded := mathutil.Round(amount)
	formatted := message.NewPrinter(language.English).Sprintf("%.2f", math.Abs(rounded))
	if rounded < 0 {
		return "-" + formatted
	}
	return formatted
}

// Percent returns a percentage with one decimal (e.g., "45.0%").
func Percent(value float64) string {
	if math.Abs(value) < 0.05 {
		value = 0
	}
	return fmt.Sprintf("%.1f%%", value)
}

// Hours returns an hour count without trailing zeros (e.g., "4.5").
func Hours(value float64) string {
	return humanize.FtoaWithDigits(value, 2)
}
