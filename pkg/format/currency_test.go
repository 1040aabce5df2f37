package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 27.5, "$27.50"},
		{"Half cent rounds away from zero", 54.625, "$54.63"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -200, "-$200.00"},
		{"Negative thousands", -1234.5, "-$1,234.50"},
		{"Negative rounds to zero", -0.001, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "0.00"},
		{655.5, "655.50"},
		{13500, "13,500.00"},
		{-1144.5, "-1,144.50"},
		{-0.004, "0.00"},
		{-0.006, "-0.01"},
	}

	for _, tt := range tests {
		if got := NumericCurrency(tt.amount); got != tt.expected {
			t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{45, "45.0%"},
		{-20, "-20.0%"},
		{63.583333, "63.6%"},
		{0, "0.0%"},
		{-0.01, "0.0%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.value); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{10, "10"},
		{4.5, "4.5"},
		{5.25, "5.25"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := Hours(tt.value); got != tt.expected {
			t.Errorf("Hours(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}
