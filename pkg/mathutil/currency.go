// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/swiftgentle/jobcost/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is
// not strictly positive.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// CalculatePercentage calculates what percentage value is of total.
// Totals that are zero or negative yield 0.
func CalculatePercentage(value, total float64) float64 {
	return SafeDivide(value, total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * percentage / constants.PercentageMultiplier
}

// Sum adds every value of a map in key order so repeated calls over the
// same map produce bit-identical totals.
func Sum[K cmp.Ordered](values map[K]float64) float64 {
	var total float64
	for _, k := range slices.Sorted(maps.Keys(values)) {
		total += values[k]
	}
	return total
}
