package analysis

import (
	"errors"
	"fmt"

	"github.com/swiftgentle/jobcost/pkg/costing"
)

// RevenueKind names where a job's revenue figure comes from.
type RevenueKind string

const (
	// RevenueJob uses JobInputs.JobRevenue as entered.
	RevenueJob RevenueKind = "job"
	// RevenueServices uses a separately tracked services revenue total.
	RevenueServices RevenueKind = "services"
)

// ErrUnknownRevenueSource is returned for a revenue source kind that is
// neither job nor services.
var ErrUnknownRevenueSource = errors.New("unknown revenue source")

// RevenueSource selects the revenue that profit is measured against. The
// zero value measures against the job revenue.
type RevenueSource struct {
	Kind   RevenueKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Amount float64     `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// Apply returns the inputs with JobRevenue replaced according to the source.
func (s RevenueSource) Apply(in costing.JobInputs) (costing.JobInputs, error) {
	switch s.Kind {
	case "", RevenueJob:
		return in, nil
	case RevenueServices:
		in.JobRevenue = s.Amount
		return in, nil
	default:
		return in, fmt.Errorf("%w %q", ErrUnknownRevenueSource, s.Kind)
	}
}

// ComputeWithRevenue applies the revenue source and runs the cost engine.
func ComputeWithRevenue(src RevenueSource, wages costing.WageTable, hours costing.HoursTable, in costing.JobInputs) (costing.JobInputs, costing.DerivedMetrics, error) {
	effective, err := src.Apply(in)
	if err != nil {
		return in, costing.DerivedMetrics{}, err
	}
	return effective, costing.ComputeJobMetrics(wages, hours, effective), nil
}

// Report gathers a job's inputs, its metrics and everything derived from them.
type Report struct {
	Customer        string                 `json:"customer,omitempty"`
	Inputs          costing.JobInputs      `json:"inputs"`
	Hours           costing.HoursTable     `json:"hours"`
	Metrics         costing.DerivedMetrics `json:"metrics"`
	Status          ProfitStatus           `json:"status"`
	StatusMessage   string                 `json:"statusMessage"`
	Recommendations []string               `json:"recommendations"`
	Breakdown       []CostShare            `json:"breakdown"`
	Contributors    []Contributor          `json:"contributors"`
	Highest         *Contributor           `json:"highest,omitempty"`
	Lowest          *Contributor           `json:"lowest,omitempty"`
}

// BuildReport computes the metrics for a job and assembles its report.
func BuildReport(customer string, wages costing.WageTable, hours costing.HoursTable, in costing.JobInputs) Report {
	return NewReport(customer, hours, in, costing.ComputeJobMetrics(wages, hours, in))
}

// NewReport assembles a report from metrics that were already computed.
func NewReport(customer string, hours costing.HoursTable, in costing.JobInputs, m costing.DerivedMetrics) Report {
	status := Status(m)
	r := Report{
		Customer:        customer,
		Inputs:          in,
		Hours:           hours.Clone(),
		Metrics:         m,
		Status:          status,
		StatusMessage:   status.Message(),
		Recommendations: Recommendations(m),
		Breakdown:       CostBreakdown(in, m),
		Contributors:    Contributors(m, hours),
	}
	if highest, lowest, ok := HighestAndLowest(m); ok {
		r.Highest = &highest
		r.Lowest = &lowest
	}
	return r
}
