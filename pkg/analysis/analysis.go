// Package analysis interprets computed job metrics: profitability status,
// pricing recommendations, labor contributors and cost distribution.
package analysis

import (
	"sort"

	"github.com/swiftgentle/jobcost/pkg/constants"
	"github.com/swiftgentle/jobcost/pkg/costing"
	"github.com/swiftgentle/jobcost/pkg/mathutil"
)

// ProfitStatus classifies how profitable a job is.
type ProfitStatus string

const (
	StatusExcellent ProfitStatus = "excellent"
	StatusGood      ProfitStatus = "good"
	StatusMarginal  ProfitStatus = "marginal"
	StatusLoss      ProfitStatus = "loss"
)

// Message returns the summary sentence shown next to the status.
func (s ProfitStatus) Message() string {
	switch s {
	case StatusExcellent:
		return "Excellent profitability! This job is highly profitable."
	case StatusGood:
		return "Good profit margins. This is a solid job."
	case StatusMarginal:
		return "Marginal profit. Consider optimizing costs or pricing."
	case StatusLoss:
		return "This job is operating at a loss. Review pricing and costs."
	default:
		return ""
	}
}

// Status classifies the metrics. Any job without a positive profit is a loss.
func Status(m costing.DerivedMetrics) ProfitStatus {
	if m.Profit <= 0 {
		return StatusLoss
	}
	switch {
	case m.ProfitMargin >= constants.ExcellentMarginPercent:
		return StatusExcellent
	case m.ProfitMargin >= constants.GoodMarginPercent:
		return StatusGood
	default:
		return StatusMarginal
	}
}

// Recommendation messages.
const (
	RecRaisePricing      = "Consider increasing pricing by 10-15% for better margins"
	RecHighLaborCost     = "Labor costs are high - optimize team efficiency"
	RecLowRevenuePerHour = "Revenue per hour is low - consider premium service pricing"
	RecImmediateAction   = "Immediate action needed - this job loses money"
	RecWellOptimizedJob  = "Great job! This is a well-optimized and profitable job."
)

// Recommendations returns the advice that applies to the metrics, in a
// stable order. It always returns at least one entry.
func Recommendations(m costing.DerivedMetrics) []string {
	var recs []string
	if m.ProfitMargin < constants.GoodMarginPercent {
		recs = append(recs, RecRaisePricing)
	}
	if m.CostPerHour > constants.HighCostPerHour {
		recs = append(recs, RecHighLaborCost)
	}
	if m.TotalHours > 0 && m.RevenuePerHour < constants.LowRevenuePerHour {
		recs = append(recs, RecLowRevenuePerHour)
	}
	if m.Profit < 0 {
		recs = append(recs, RecImmediateAction)
	}
	if len(recs) == 0 {
		recs = append(recs, RecWellOptimizedJob)
	}
	return recs
}

// Contributor is one employee's share of the labor cost.
type Contributor struct {
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	Hours        float64 `json:"hours"`
	ShareOfLabor float64 `json:"shareOfLabor"`
}

// Contributors ranks the employees in the labor cost map from most to least
// expensive. Ties are ordered by name.
func Contributors(m costing.DerivedMetrics, hours costing.HoursTable) []Contributor {
	out := make([]Contributor, 0, len(m.LaborCosts))
	for name, cost := range m.LaborCosts {
		out = append(out, Contributor{
			Name:         name,
			Cost:         cost,
			Hours:        hours[name],
			ShareOfLabor: mathutil.CalculatePercentage(cost, m.TotalLaborCost),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost > out[j].Cost
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HighestAndLowest returns the most and least expensive employees with a
// positive labor cost. ok is false when nobody has a positive cost.
func HighestAndLowest(m costing.DerivedMetrics) (highest, lowest Contributor, ok bool) {
	var positive []Contributor
	for _, c := range Contributors(m, nil) {
		if c.Cost > 0 {
			positive = append(positive, c)
		}
	}
	if len(positive) == 0 {
		return Contributor{}, Contributor{}, false
	}
	return positive[0], positive[len(positive)-1], true
}

// CostShare is one category of the total cost distribution.
type CostShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Cost categories, in display order.
const (
	CategoryLabor     = "Labor"
	CategoryFuel      = "Fuel"
	CategoryVehicles  = "Vehicles"
	CategoryEquipment = "Equipment"
	CategoryMaterials = "Materials"
	CategoryOverhead  = "Overhead"
)

// CostBreakdown splits the total cost into its categories with each one's
// percentage of the total. Percentages are 0 when the total is not positive.
func CostBreakdown(in costing.JobInputs, m costing.DerivedMetrics) []CostShare {
	amounts := []struct {
		category string
		amount   float64
	}{
		{CategoryLabor, m.TotalLaborCost},
		{CategoryFuel, in.FuelCost},
		{CategoryVehicles, in.VehicleCosts},
		{CategoryEquipment, in.EquipmentCosts},
		{CategoryMaterials, in.MaterialsCosts},
		{CategoryOverhead, m.OverheadCosts},
	}

	shares := make([]CostShare, 0, len(amounts))
	for _, a := range amounts {
		shares = append(shares, CostShare{
			Category:   a.category,
			Amount:     a.amount,
			Percentage: mathutil.CalculatePercentage(a.amount, m.TotalCost),
		})
	}
	return shares
}
