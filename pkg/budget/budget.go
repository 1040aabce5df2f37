// Package budget aggregates the company's departmental budget: departments
// hold named subcategories with a dollar amount each.
package budget

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/swiftgentle/jobcost/pkg/mathutil"
)

// NewSubcategoryName is the placeholder subcategory a new department starts with.
const NewSubcategoryName = "subcategory 1"

var (
	// ErrDuplicateDepartment is returned when adding a department that exists.
	ErrDuplicateDepartment = errors.New("department already exists")
	// ErrInvalidName is returned for blank department or subcategory names.
	ErrInvalidName = errors.New("name must not be empty")
	// ErrUnknownDepartment is returned when a department is missing.
	ErrUnknownDepartment = errors.New("department not found")
)

// Departments maps department → subcategory → amount.
type Departments map[string]map[string]float64

// DefaultDepartments returns the starting budget.
func DefaultDepartments() Departments {
	return Departments{
		"labor":      {"crew": 6000, "interns": 2000},
		"marketing":  {"flyers": 1500, "emailTools": 500},
		"equipment":  {"trucks": 2500},
		"operations": {"insurance": 1000},
	}
}

// Clone returns a deep copy.
func (d Departments) Clone() Departments {
	out := make(Departments, len(d))
	for dept, subs := range d {
		out[dept] = maps.Clone(subs)
		if out[dept] == nil {
			out[dept] = map[string]float64{}
		}
	}
	return out
}

// Names returns the department names in alphabetical order.
func (d Departments) Names() []string {
	return slices.Sorted(maps.Keys(d))
}

// Totals sums every department's subcategories.
func Totals(d Departments) map[string]float64 {
	totals := make(map[string]float64, len(d))
	for dept, subs := range d {
		totals[dept] = mathutil.Sum(subs)
	}
	return totals
}

// GrandTotal sums the whole budget.
func GrandTotal(d Departments) float64 {
	return mathutil.Sum(Totals(d))
}

// DepartmentShare is one department's slice of the budget.
type DepartmentShare struct {
	Department string  `json:"department"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Shares returns each department's total and percentage of the grand total,
// sorted by department name.
func Shares(d Departments) []DepartmentShare {
	totals := Totals(d)
	grand := mathutil.Sum(totals)

	shares := make([]DepartmentShare, 0, len(totals))
	for _, dept := range d.Names() {
		shares = append(shares, DepartmentShare{
			Department: dept,
			Total:      totals[dept],
			Percentage: mathutil.CalculatePercentage(totals[dept], grand),
		})
	}
	return shares
}

// AddDepartment adds a department holding a single zero-valued placeholder
// subcategory.
func AddDepartment(d Departments, name string) (Departments, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if _, exists := d[name]; exists {
		return nil, fmt.Errorf("add department %q: %w", name, ErrDuplicateDepartment)
	}
	out := d.Clone()
	out[name] = map[string]float64{NewSubcategoryName: 0}
	return out, nil
}

// SetSubcategory sets a subcategory amount, creating the department and the
// subcategory as needed.
func SetSubcategory(d Departments, dept, sub string, amount float64) (Departments, error) {
	dept = strings.TrimSpace(dept)
	sub = strings.TrimSpace(sub)
	if dept == "" || sub == "" {
		return nil, ErrInvalidName
	}
	out := d.Clone()
	if out[dept] == nil {
		out[dept] = map[string]float64{}
	}
	out[dept][sub] = amount
	return out, nil
}

// RemoveDepartment drops a department and all of its subcategories.
func RemoveDepartment(d Departments, dept string) (Departments, error) {
	if _, exists := d[dept]; !exists {
		return nil, fmt.Errorf("remove department %q: %w", dept, ErrUnknownDepartment)
	}
	out := d.Clone()
	delete(out, dept)
	return out, nil
}

// Summary compares the budget with the monthly revenue that funds it.
type Summary struct {
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
	Total              float64 `json:"total"`
	Remaining          float64 `json:"remaining"`
	UtilizationPercent float64 `json:"utilizationPercent"`
}

// Summarize computes the budget summary. Utilization is 0 when the revenue
// is not positive.
func Summarize(d Departments, monthlyRevenue float64) Summary {
	total := GrandTotal(d)
	return Summary{
		MonthlyRevenue:     monthlyRevenue,
		Total:              total,
		Remaining:          monthlyRevenue - total,
		UtilizationPercent: mathutil.CalculatePercentage(total, monthlyRevenue),
	}
}
