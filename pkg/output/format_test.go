package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/swiftgentle/jobcost/pkg/analysis"
	"github.com/swiftgentle/jobcost/pkg/costing"
)

func sampleReport() analysis.Report {
	wages := costing.WageTable{"chino": 25, "rey": 20}
	hours := costing.HoursTable{"chino": 6, "rey": 6}
	in := costing.JobInputs{
		JobRevenue:         1800,
		FuelCost:           120,
		VehicleCosts:       80,
		EquipmentCosts:     40,
		MaterialsCosts:     60,
		OverheadPercentage: 15,
	}
	return analysis.BuildReport("Jane Doe", wages, hours, in)
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePretty(&buf, sampleReport()); err != nil {
		t.Fatalf("WritePretty() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"--- Job cost analysis for Jane Doe ---",
		"Status: EXCELLENT",
		"Revenue             | $1,800.00",
		"Total cost          | $655.50",
		"Profit              | $1,144.50",
		"Profit margin       | 63.6%",
		"Total hours         | 12",
		"chino",
		"Cost per hour       | $54.63",
		"Recommendations:",
		analysis.RecHighLaborCost,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("pretty output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, analysis.RecWellOptimizedJob) {
		t.Errorf("high cost per hour must not be called well optimized:\n%s", output)
	}
}

func TestWritePrettyWellOptimized(t *testing.T) {
	report := analysis.BuildReport("", costing.WageTable{"chino": 25}, costing.HoursTable{"chino": 10},
		costing.JobInputs{JobRevenue: 1000})

	var buf bytes.Buffer
	if err := WritePretty(&buf, report); err != nil {
		t.Fatalf("WritePretty() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Cost per hour       | $25.00",
		"Revenue per hour    | $100.00",
		"chino               |    10 |    $250.00 | 100.0%",
		analysis.RecWellOptimizedJob,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("pretty output missing %q:\n%s", want, output)
		}
	}
}

func TestWritePrettyLoss(t *testing.T) {
	report := analysis.BuildReport("", nil, nil, costing.JobInputs{JobRevenue: 1000, MaterialsCosts: 1000, OverheadPercentage: 20})

	var buf bytes.Buffer
	if err := WritePretty(&buf, report); err != nil {
		t.Fatalf("WritePretty() error = %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "--- Job cost analysis ---") {
		t.Errorf("expected untitled header, got:\n%s", output)
	}
	if !strings.Contains(output, "-$200.00") {
		t.Errorf("expected negative profit rendered as -$200.00, got:\n%s", output)
	}
	if !strings.Contains(output, "-20.0%") {
		t.Errorf("expected negative margin, got:\n%s", output)
	}
	if strings.Contains(output, "Employee ") {
		t.Errorf("expected no employee table without labor, got:\n%s", output)
	}
}

func TestPrettyFormatWritesStdout(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	PrettyFormat(sampleReport())

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	if !strings.Contains(buf.String(), "Jane Doe") {
		t.Errorf("PrettyFormat did not write to stdout: %q", buf.String())
	}
}

func TestCsvString(t *testing.T) {
	records, err := csv.NewReader(strings.NewReader(CsvString(sampleReport()))).ReadAll()
	if err != nil {
		t.Fatalf("CSV output does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(records))
	}
	header, row := records[0], records[1]
	if len(header) != len(row) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(row))
	}

	got := make(map[string]string, len(header))
	for i, key := range header {
		got[key] = row[i]
	}
	expected := map[string]string{
		"customer":      "Jane Doe",
		"totalCost":     "655.50",
		"profit":        "1144.50",
		"status":        "excellent",
		"labor (chino)": "150.00",
		"labor (rey)":   "120.00",
	}
	for key, want := range expected {
		if got[key] != want {
			t.Errorf("column %q = %q, expected %q", key, got[key], want)
		}
	}
	if header[len(header)-2] != "labor (chino)" {
		t.Errorf("expected employee columns sorted by name, got %v", header)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded analysis.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if decoded.Metrics.TotalHours != 12 || decoded.Status != analysis.StatusExcellent {
		t.Errorf("unexpected decoded report: %+v", decoded)
	}
}
