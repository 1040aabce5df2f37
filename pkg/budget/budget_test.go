package budget

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestTotals(t *testing.T) {
	totals := Totals(DefaultDepartments())
	want := map[string]float64{"labor": 8000, "marketing": 2000, "equipment": 2500, "operations": 1000}
	if !reflect.DeepEqual(totals, want) {
		t.Errorf("Totals() = %v, expected %v", totals, want)
	}
	if got := GrandTotal(DefaultDepartments()); got != 13500 {
		t.Errorf("GrandTotal() = %v, expected 13500", got)
	}
	if got := GrandTotal(nil); got != 0 {
		t.Errorf("GrandTotal(nil) = %v, expected 0", got)
	}
}

func TestShares(t *testing.T) {
	shares := Shares(Departments{
		"labor":     {"crew": 750},
		"marketing": {"flyers": 250},
		"empty":     {},
	})

	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	if shares[0].Department != "empty" || shares[1].Department != "labor" || shares[2].Department != "marketing" {
		t.Errorf("shares not sorted by name: %+v", shares)
	}
	if math.Abs(shares[1].Percentage-75) > 1e-9 || math.Abs(shares[2].Percentage-25) > 1e-9 {
		t.Errorf("unexpected percentages: %+v", shares)
	}
	if shares[0].Percentage != 0 {
		t.Errorf("expected empty department at 0%%, got %v", shares[0].Percentage)
	}

	for _, s := range Shares(Departments{"a": {"x": 0}}) {
		if s.Percentage != 0 {
			t.Errorf("expected 0%% when grand total is zero, got %v", s.Percentage)
		}
	}
}

func TestAddDepartment(t *testing.T) {
	base := DefaultDepartments()

	got, err := AddDepartment(base, " Storage ")
	if err != nil {
		t.Fatalf("AddDepartment() error = %v", err)
	}
	if !reflect.DeepEqual(got["Storage"], map[string]float64{NewSubcategoryName: 0}) {
		t.Errorf("unexpected new department: %v", got["Storage"])
	}
	if _, ok := base["Storage"]; ok {
		t.Error("AddDepartment mutated its input")
	}

	if _, err := AddDepartment(base, "labor"); !errors.Is(err, ErrDuplicateDepartment) {
		t.Errorf("expected ErrDuplicateDepartment, got %v", err)
	}
	if _, err := AddDepartment(base, "  "); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestSetSubcategory(t *testing.T) {
	base := DefaultDepartments()

	got, err := SetSubcategory(base, "labor", "crew", 6500)
	if err != nil {
		t.Fatalf("SetSubcategory() error = %v", err)
	}
	if got["labor"]["crew"] != 6500 || base["labor"]["crew"] != 6000 {
		t.Errorf("expected copy-on-write update, got %v / %v", got["labor"], base["labor"])
	}

	got, err = SetSubcategory(got, "fleet", "tires", 300)
	if err != nil {
		t.Fatalf("SetSubcategory() new department error = %v", err)
	}
	if got["fleet"]["tires"] != 300 {
		t.Errorf("expected new department created, got %v", got["fleet"])
	}

	if _, err := SetSubcategory(base, "labor", " ", 1); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestRemoveDepartment(t *testing.T) {
	base := DefaultDepartments()
	got, err := RemoveDepartment(base, "marketing")
	if err != nil {
		t.Fatalf("RemoveDepartment() error = %v", err)
	}
	if _, ok := got["marketing"]; ok {
		t.Error("expected marketing removed")
	}
	if _, ok := base["marketing"]; !ok {
		t.Error("RemoveDepartment mutated its input")
	}
	if _, err := RemoveDepartment(base, "nope"); !errors.Is(err, ErrUnknownDepartment) {
		t.Errorf("expected ErrUnknownDepartment, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		revenue     float64
		remaining   float64
		utilization float64
	}{
		{"Default revenue", 50000, 36500, 27},
		{"Over budget", 10000, -3500, 135},
		{"No revenue", 0, -13500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(DefaultDepartments(), tt.revenue)
			if s.Total != 13500 {
				t.Errorf("Total = %v, expected 13500", s.Total)
			}
			if math.Abs(s.Remaining-tt.remaining) > 1e-9 {
				t.Errorf("Remaining = %v, expected %v", s.Remaining, tt.remaining)
			}
			if math.Abs(s.UtilizationPercent-tt.utilization) > 1e-9 {
				t.Errorf("UtilizationPercent = %v, expected %v", s.UtilizationPercent, tt.utilization)
			}
		})
	}
}
