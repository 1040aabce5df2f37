package roster

import (
	"errors"
	"reflect"
	"testing"

	"github.com/swiftgentle/jobcost/pkg/costing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Chino", "chino"},
		{"  REY  ", "rey"},
		{"", ""},
		{"   ", ""},
		{"Mary Ann", "mary ann"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultWages(t *testing.T) {
	wages := DefaultWages()
	if len(wages) != 10 {
		t.Fatalf("expected 10 default employees, got %d", len(wages))
	}
	if wages["rey"] != 20 || wages["sam"] != 15 || wages["chino"] != 25 || wages["intern"] != 13 {
		t.Errorf("unexpected default wages: %v", wages)
	}

	wages["rey"] = 99
	if DefaultWages()["rey"] != 20 {
		t.Error("DefaultWages should return a fresh table each call")
	}
}

func TestAdd(t *testing.T) {
	base := costing.WageTable{"chino": 25}

	tests := []struct {
		name    string
		input   string
		wage    float64
		wantErr error
	}{
		{"new employee", "  Sam ", 15, nil},
		{"empty name", "   ", 15, ErrInvalidName},
		{"zero wage", "sam", 0, ErrInvalidWage},
		{"negative wage", "sam", -3, ErrInvalidWage},
		{"duplicate after normalization", "CHINO", 30, ErrDuplicateEmployee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(base, tt.input, tt.wage)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Add() error = %v, expected %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add() unexpected error: %v", err)
			}
			if got["sam"] != 15 {
				t.Errorf("expected sam at 15, got %v", got)
			}
		})
	}

	if len(base) != 1 {
		t.Errorf("Add mutated its input: %v", base)
	}
}

func TestUpdateWage(t *testing.T) {
	base := costing.WageTable{"rey": 20}

	got, err := UpdateWage(base, "Rey", 22.5)
	if err != nil {
		t.Fatalf("UpdateWage() error = %v", err)
	}
	if got["rey"] != 22.5 {
		t.Errorf("expected updated wage 22.5, got %v", got["rey"])
	}
	if base["rey"] != 20 {
		t.Errorf("UpdateWage mutated its input")
	}

	if _, err := UpdateWage(base, "nobody", 10); !errors.Is(err, ErrUnknownEmployee) {
		t.Errorf("expected ErrUnknownEmployee, got %v", err)
	}
	if _, err := UpdateWage(base, "rey", 0); !errors.Is(err, ErrInvalidWage) {
		t.Errorf("expected ErrInvalidWage, got %v", err)
	}
}

func TestUpsert(t *testing.T) {
	wages, err := Upsert(costing.WageTable{}, "Daniel", 25)
	if err != nil {
		t.Fatalf("Upsert() add error = %v", err)
	}
	wages, err = Upsert(wages, "daniel", 27)
	if err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}
	if !reflect.DeepEqual(wages, costing.WageTable{"daniel": 27}) {
		t.Errorf("unexpected wages after upsert: %v", wages)
	}
}

func TestRemoveDropsHours(t *testing.T) {
	wages := costing.WageTable{"chino": 25, "rey": 20}
	hours := costing.HoursTable{"chino": 8, "rey": 4}

	gotWages, gotHours, err := Remove(wages, hours, " Chino")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := gotWages["chino"]; ok {
		t.Error("expected chino removed from wages")
	}
	if _, ok := gotHours["chino"]; ok {
		t.Error("expected chino removed from hours")
	}
	if gotHours["rey"] != 4 {
		t.Errorf("expected rey hours preserved, got %v", gotHours)
	}
	if len(wages) != 2 || len(hours) != 2 {
		t.Error("Remove mutated its inputs")
	}

	if _, _, err := Remove(wages, hours, "ghost"); !errors.Is(err, ErrUnknownEmployee) {
		t.Errorf("expected ErrUnknownEmployee, got %v", err)
	}
}

func TestNormalizeTables(t *testing.T) {
	wages := Normalize(costing.WageTable{"Chino": 25, " rey ": 20, "": 9})
	if !reflect.DeepEqual(wages, costing.WageTable{"chino": 25, "rey": 20}) {
		t.Errorf("Normalize() = %v", wages)
	}

	hours := NormalizeHours(costing.HoursTable{"Rey": 2, "rey": 3, "SAM": 1})
	if !reflect.DeepEqual(hours, costing.HoursTable{"rey": 5, "sam": 1}) {
		t.Errorf("NormalizeHours() = %v", hours)
	}
}

func TestNames(t *testing.T) {
	got := Names(costing.WageTable{"rey": 1, "chino": 1, "sam": 1})
	want := []string{"chino", "rey", "sam"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, expected %v", got, want)
	}
}
