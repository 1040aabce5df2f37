// Package output provides utilities for formatting and displaying job cost reports.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/swiftgentle/jobcost/pkg/analysis"
	"github.com/swiftgentle/jobcost/pkg/format"
	"github.com/swiftgentle/jobcost/pkg/roster"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(report analysis.Report) {
	_ = WritePretty(os.Stdout, report)
}

// WritePretty writes the human-readable report to w.
func WritePretty(w io.Writer, report analysis.Report) error {
	m := report.Metrics
	var b strings.Builder

	title := "Job cost analysis"
	if report.Customer != "" {
		title += " for " + report.Customer
	}
	fmt.Fprintf(&b, "--- %s ---\n", title)
	fmt.Fprintf(&b, "Status: %s - %s\n\n", strings.ToUpper(string(report.Status)), report.StatusMessage)

	fmt.Fprintf(&b, "Item                | Amount\n")
	fmt.Fprintf(&b, "____                | ______\n")
	rows := []struct {
		label  string
		amount float64
	}{
		{"Revenue", report.Inputs.JobRevenue},
		{"Labor", m.TotalLaborCost},
		{"Fuel", report.Inputs.FuelCost},
		{"Vehicles", report.Inputs.VehicleCosts},
		{"Equipment", report.Inputs.EquipmentCosts},
		{"Materials", report.Inputs.MaterialsCosts},
		{"Direct costs", m.TotalDirectCosts},
		{"Overhead", m.OverheadCosts},
		{"Total cost", m.TotalCost},
		{"Profit", m.Profit},
		{"Break-even revenue", m.BreakEvenRevenue},
		{"Cost per hour", m.CostPerHour},
		{"Revenue per hour", m.RevenuePerHour},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-19s | %s\n", row.label, format.Currency(row.amount))
	}
	fmt.Fprintf(&b, "%-19s | %s\n", "Profit margin", format.Percent(m.ProfitMargin))
	fmt.Fprintf(&b, "%-19s | %s\n", "Total hours", format.Hours(m.TotalHours))

	if len(report.Contributors) > 0 {
		fmt.Fprintf(&b, "\nEmployee            | Hours | Labor cost | Share\n")
		fmt.Fprintf(&b, "________            | _____ | __________ | _____\n")
		for _, c := range report.Contributors {
			fmt.Fprintf(&b, "%-19s | %5s | %10s | %s\n", c.Name, format.Hours(c.Hours), format.Currency(c.Cost), format.Percent(c.ShareOfLabor))
		}
	}

	fmt.Fprintf(&b, "\nRecommendations:\n")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs the report in comma-separated value format.
func CsvFormat(report analysis.Report) {
	fmt.Print(CsvString(report))
}

// CsvString renders the report as a two-line CSV: a header row and one
// value row. Per-employee labor costs follow the totals as "labor (name)".
func CsvString(report analysis.Report) string {
	m := report.Metrics
	header := []string{
		"customer", "jobRevenue", "fuelCost", "vehicleCosts", "equipmentCosts", "materialsCosts",
		"overheadPercentage", "totalLaborCost", "totalDirectCosts", "overheadCosts", "totalCost",
		"profit", "profitMargin", "breakEvenRevenue", "totalHours", "costPerHour", "revenuePerHour", "status",
	}
	values := []float64{
		report.Inputs.JobRevenue, report.Inputs.FuelCost, report.Inputs.VehicleCosts,
		report.Inputs.EquipmentCosts, report.Inputs.MaterialsCosts, report.Inputs.OverheadPercentage,
		m.TotalLaborCost, m.TotalDirectCosts, m.OverheadCosts, m.TotalCost, m.Profit, m.ProfitMargin,
		m.BreakEvenRevenue, m.TotalHours, m.CostPerHour, m.RevenuePerHour,
	}
	row := make([]string, 0, len(header))
	row = append(row, report.Customer)
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
	}
	row = append(row, string(report.Status))

	for _, name := range roster.Names(m.LaborCosts) {
		header = append(header, fmt.Sprintf("labor (%s)", name))
		row = append(row, strconv.FormatFloat(m.LaborCosts[name], 'f', 2, 64))
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write(header)
	_ = writer.Write(row)
	writer.Flush()
	return buf.String()
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(report analysis.Report) {
	_ = WriteJSON(os.Stdout, report)
}

// WriteJSON writes the report to w as indented JSON.
func WriteJSON(w io.Writer, report analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
