// Package roster manages the employee wage table and the hours recorded
// against it. Every operation returns new tables and leaves its arguments
// untouched.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/swiftgentle/jobcost/pkg/costing"
)

var (
	// ErrInvalidName is returned for names that are empty after normalization.
	ErrInvalidName = errors.New("employee name must not be empty")
	// ErrInvalidWage is returned for wages that are not positive.
	ErrInvalidWage = errors.New("hourly wage must be greater than zero")
	// ErrDuplicateEmployee is returned when adding a name that already exists.
	ErrDuplicateEmployee = errors.New("employee already exists")
	// ErrUnknownEmployee is returned when editing or removing a missing name.
	ErrUnknownEmployee = errors.New("employee not found")
)

// NormalizeName lower-cases and trims an employee name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultWages returns the starting crew and their hourly wages.
func DefaultWages() costing.WageTable {
	return costing.WageTable{
		"chino":     25,
		"cosme":     25,
		"chief":     25,
		"daniel":    25,
		"brendon":   13,
		"chengetai": 13,
		"matarutse": 13,
		"rey":       20,
		"intern":    13,
		"sam":       15,
	}
}

// Normalize folds every key of the wage table through NormalizeName. When
// two keys collapse onto the same name the later one in key order wins.
func Normalize(wages costing.WageTable) costing.WageTable {
	out := make(costing.WageTable, len(wages))
	for _, name := range sortedNames(wages) {
		if key := NormalizeName(name); key != "" {
			out[key] = wages[name]
		}
	}
	return out
}

// NormalizeHours folds hours keys through NormalizeName, adding together
// entries that collapse onto the same name.
func NormalizeHours(hours costing.HoursTable) costing.HoursTable {
	out := make(costing.HoursTable, len(hours))
	for _, name := range sortedNames(hours) {
		if key := NormalizeName(name); key != "" {
			out[key] += hours[name]
		}
	}
	return out
}

// Add registers a new employee.
func Add(wages costing.WageTable, name string, wage float64) (costing.WageTable, error) {
	key := NormalizeName(name)
	if key == "" {
		return nil, ErrInvalidName
	}
	if wage <= 0 {
		return nil, fmt.Errorf("add %q: %w", key, ErrInvalidWage)
	}
	if _, exists := wages[key]; exists {
		return nil, fmt.Errorf("add %q: %w", key, ErrDuplicateEmployee)
	}

	out := wages.Clone()
	out[key] = wage
	return out, nil
}

// UpdateWage changes the wage of an existing employee.
func UpdateWage(wages costing.WageTable, name string, wage float64) (costing.WageTable, error) {
	key := NormalizeName(name)
	if _, exists := wages[key]; !exists {
		return nil, fmt.Errorf("update %q: %w", key, ErrUnknownEmployee)
	}
	if wage <= 0 {
		return nil, fmt.Errorf("update %q: %w", key, ErrInvalidWage)
	}

	out := wages.Clone()
	out[key] = wage
	return out, nil
}

// Upsert adds the employee or replaces its wage.
func Upsert(wages costing.WageTable, name string, wage float64) (costing.WageTable, error) {
	if _, exists := wages[NormalizeName(name)]; exists {
		return UpdateWage(wages, name, wage)
	}
	return Add(wages, name, wage)
}

// Remove drops an employee from the wage table and its entry from the hours
// table, so no stale hours outlive the employee.
func Remove(wages costing.WageTable, hours costing.HoursTable, name string) (costing.WageTable, costing.HoursTable, error) {
	key := NormalizeName(name)
	if _, exists := wages[key]; !exists {
		return nil, nil, fmt.Errorf("remove %q: %w", key, ErrUnknownEmployee)
	}

	outWages := wages.Clone()
	delete(outWages, key)
	outHours := hours.Clone()
	delete(outHours, key)
	return outWages, outHours, nil
}

// Names returns the names of a wage or hours table in alphabetical order.
func Names[M ~map[string]float64](table M) []string {
	return sortedNames(table)
}
