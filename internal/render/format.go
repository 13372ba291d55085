// Package render turns dashboard views into display strings and chart
// images.
package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/ev-dashboard/internal/model"
)

// UnknownLabel is shown for zero ranges and empty eligibility counts.
const UnknownLabel = "Unknown"

var printer = message.NewPrinter(language.English)

// Count formats an integer with en-US digit grouping: 1234 → "1,234".
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats a percentage with two decimals and no sign: "12.34".
func Percent(p float64) string {
	return printer.Sprintf("%.2f", p)
}

// Share returns value as a percentage of total, or 0 when total is 0.
func Share(value, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(value) / float64(total) * 100
}

// ManufacturerValue is the donut tooltip: "1,234 vehicles (12.34%)".
func ManufacturerValue(value, total int) string {
	return printer.Sprintf("%d vehicles (%s%%)", value, Percent(Share(value, total)))
}

// RangeValue formats a range in miles; zero means it was never researched.
func RangeValue(miles int) string {
	if miles <= 0 {
		return UnknownLabel
	}
	return Count(miles)
}

// EligibilityValue formats a bucket count for the eligibility pie.
func EligibilityValue(n int) string {
	if n <= 0 {
		return UnknownLabel
	}
	return Count(n) + " vehicles"
}

// EligibilityDescription is the long label listed under the pie.
func EligibilityDescription(e model.Eligibility) string {
	return e.Description()
}
