package validation

import (
	"fmt"

	"github.com/swiftgentle/jobcost/pkg/constants"
	"github.com/swiftgentle/jobcost/pkg/costing"
	"github.com/swiftgentle/jobcost/pkg/format"
	"github.com/swiftgentle/jobcost/pkg/mathutil"
	"github.com/swiftgentle/jobcost/pkg/roster"
)

// InputWarnings reports inputs that are accepted but probably mistaken.
// The cost engine computes with them regardless.
func InputWarnings(wages costing.WageTable, hours costing.HoursTable, in costing.JobInputs) []string {
	var warnings []string

	costs := []struct {
		label string
		value float64
	}{
		{"Job revenue", in.JobRevenue},
		{"Fuel cost", in.FuelCost},
		{"Vehicle costs", in.VehicleCosts},
		{"Equipment costs", in.EquipmentCosts},
		{"Materials costs", in.MaterialsCosts},
	}
	for _, c := range costs {
		if c.value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%s)", c.label, format.Currency(c.value)))
		}
	}

	if mathutil.IsZero(in.JobRevenue) {
		warnings = append(warnings, "Job revenue is zero - profit margin and revenue per hour will show as 0")
	}

	if in.OverheadPercentage < 0 || in.OverheadPercentage > constants.MaxReasonableOverheadPercent {
		warnings = append(warnings, fmt.Sprintf("Overhead percentage %s is outside 0-100%%", format.Percent(in.OverheadPercentage)))
	}

	for _, name := range roster.Names(wages) {
		if wages[name] < 0 {
			warnings = append(warnings, fmt.Sprintf("Employee '%s' has a negative wage (%s)", name, format.Currency(wages[name])))
		}
	}

	for _, name := range roster.Names(hours) {
		h := hours[name]
		if h < 0 {
			warnings = append(warnings, fmt.Sprintf("Employee '%s' has negative hours (%s)", name, format.Hours(h)))
		}
		if _, ok := wages[name]; !ok && h > 0 {
			warnings = append(warnings, fmt.Sprintf("Employee '%s' has %s hours but no wage - hours count toward totals without labor cost", name, format.Hours(h)))
		}
	}

	return warnings
}
