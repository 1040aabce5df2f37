// Package constants provides shared constants for the jobcost application.
package constants

// Costing constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DefaultOverheadPercentage is the overhead applied when a job file omits it
	DefaultOverheadPercentage = 15.0
)

// Profit analysis thresholds
const (
	// ExcellentMarginPercent is the margin at or above which a profitable job is excellent
	ExcellentMarginPercent = 20.0

	// GoodMarginPercent is the margin at or above which a profitable job is good
	GoodMarginPercent = 10.0

	// HighCostPerHour flags jobs whose loaded cost per hour is expensive
	HighCostPerHour = 50.0

	// LowRevenuePerHour flags jobs that bill too little per crew hour
	LowRevenuePerHour = 75.0

	// MaxReasonableOverheadPercent is the overhead above which a warning is emitted
	MaxReasonableOverheadPercent = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// ExportFormatYAML is the YAML export format offered by the server
	ExportFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default job file name
	DefaultConfigFile = "job.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultDatabasePath is the default sqlite database location
	DefaultDatabasePath = "jobcost.db"

	// DefaultListLimit caps list endpoints when no limit is requested
	DefaultListLimit = 50

	// MaxListLimit is the largest limit a list endpoint honours
	MaxListLimit = 500
)
