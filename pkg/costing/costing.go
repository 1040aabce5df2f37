// Package costing derives job cost and profitability metrics from a wage
// table, the hours worked on a job, and the job's direct costs.
package costing

import (
	"github.com/swiftgentle/jobcost/pkg/constants"
	"github.com/swiftgentle/jobcost/pkg/mathutil"
)

// DefaultOverheadPercentage is the overhead the calculator starts with. The
// engine never applies it on its own; callers fill it in for unset input.
const DefaultOverheadPercentage = constants.DefaultOverheadPercentage

// WageTable maps an employee name to an hourly wage.
type WageTable map[string]float64

// HoursTable maps an employee name to the hours worked on a job.
type HoursTable map[string]float64

// JobInputs holds the revenue and direct costs of a single job. Every field
// left unset is treated as 0. OverheadPercentage is in percentage points
// (15 means 15%) and is not range checked.
type JobInputs struct {
	JobRevenue         float64 `json:"jobRevenue" yaml:"revenue"`
	FuelCost           float64 `json:"fuelCost" yaml:"fuelCost"`
	VehicleCosts       float64 `json:"vehicleCosts" yaml:"vehicleCosts"`
	EquipmentCosts     float64 `json:"equipmentCosts" yaml:"equipmentCosts"`
	MaterialsCosts     float64 `json:"materialsCosts" yaml:"materialsCosts"`
	OverheadPercentage float64 `json:"overheadPercentage" yaml:"overheadPercentage"`
}

// NonLaborCosts returns the sum of the fuel, vehicle, equipment and
// materials costs.
func (in JobInputs) NonLaborCosts() float64 {
	return in.FuelCost + in.VehicleCosts + in.EquipmentCosts + in.MaterialsCosts
}

// DerivedMetrics is the result of ComputeJobMetrics. It is rebuilt from
// scratch on every call.
type DerivedMetrics struct {
	// LaborCosts only holds employees with positive hours and a wage entry.
	LaborCosts       map[string]float64 `json:"laborCosts"`
	TotalLaborCost   float64            `json:"totalLaborCost"`
	TotalDirectCosts float64            `json:"totalDirectCosts"`
	OverheadCosts    float64            `json:"overheadCosts"`
	TotalCost        float64            `json:"totalCost"`
	Profit           float64            `json:"profit"`
	ProfitMargin     float64            `json:"profitMargin"`
	BreakEvenRevenue float64            `json:"breakEvenRevenue"`
	TotalHours       float64            `json:"totalHours"`
	CostPerHour      float64            `json:"costPerHour"`
	RevenuePerHour   float64            `json:"revenuePerHour"`
}

// ComputeJobMetrics derives labor cost, totals, overhead, profit and per-hour
// figures for a job. It never fails, never mutates its arguments and holds no
// state, so it is safe to call concurrently.
//
// Hours for names missing from wages count toward TotalHours but add no
// labor cost. ProfitMargin is 0 unless JobRevenue is positive, and the
// per-hour figures are 0 unless TotalHours is positive.
func ComputeJobMetrics(wages WageTable, hours HoursTable, in JobInputs) DerivedMetrics {
	laborCosts := make(map[string]float64)
	for name, h := range hours {
		if h <= 0 {
			continue
		}
		wage, ok := wages[name]
		if !ok {
			continue
		}
		laborCosts[name] = h * wage
	}

	totalLaborCost := mathutil.Sum(laborCosts)
	totalDirectCosts := totalLaborCost + in.NonLaborCosts()
	overheadCosts := mathutil.ApplyPercentage(totalDirectCosts, in.OverheadPercentage)
	totalCost := totalDirectCosts + overheadCosts
	profit := in.JobRevenue - totalCost
	totalHours := mathutil.Sum(hours)

	return DerivedMetrics{
		LaborCosts:       laborCosts,
		TotalLaborCost:   totalLaborCost,
		TotalDirectCosts: totalDirectCosts,
		OverheadCosts:    overheadCosts,
		TotalCost:        totalCost,
		Profit:           profit,
		ProfitMargin:     mathutil.CalculatePercentage(profit, in.JobRevenue),
		BreakEvenRevenue: totalCost,
		TotalHours:       totalHours,
		CostPerHour:      mathutil.SafeDivide(totalCost, totalHours),
		RevenuePerHour:   mathutil.SafeDivide(in.JobRevenue, totalHours),
	}
}

// Clone returns a deep copy of the wage table.
func (w WageTable) Clone() WageTable {
	out := make(WageTable, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of the hours table.
func (h HoursTable) Clone() HoursTable {
	out := make(HoursTable, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
