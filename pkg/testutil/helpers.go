// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/swiftgentle/jobcost/pkg/analysis"
)

// FloatTolerance is the absolute difference under which two computed
// amounts are considered equal in tests.
const FloatTolerance = 1e-9

// AlmostEqual reports whether a and b differ by less than FloatTolerance.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < FloatTolerance
}

// FindContributor finds an employee by name in a contributor list.
// Returns a pointer to the contributor if found, nil otherwise.
func FindContributor(contributors []analysis.Contributor, name string) *analysis.Contributor {
	for i := range contributors {
		if contributors[i].Name == name {
			return &contributors[i]
		}
	}
	return nil
}

// FindShare finds a cost category in a cost breakdown.
// Returns a pointer to the share if found, nil otherwise.
func FindShare(breakdown []analysis.CostShare, category string) *analysis.CostShare {
	for i := range breakdown {
		if breakdown[i].Category == category {
			return &breakdown[i]
		}
	}
	return nil
}
