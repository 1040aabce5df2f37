// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/swiftgentle/jobcost/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateExportFormat checks the formats a saved job can be exported in.
func ValidateExportFormat(format string) error {
	switch format {
	case constants.OutputFormatCSV, constants.OutputFormatJSON, constants.ExportFormatYAML:
		return nil
	}
	return fmt.Errorf("expected export format of %s, %s or %s, got %s",
		constants.OutputFormatCSV, constants.OutputFormatJSON, constants.ExportFormatYAML, format)
}
