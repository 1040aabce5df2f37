package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swiftgentle/jobcost/internal/config"
	"github.com/swiftgentle/jobcost/internal/logging"
	"github.com/swiftgentle/jobcost/pkg/constants"
	"github.com/swiftgentle/jobcost/pkg/output"
	"github.com/swiftgentle/jobcost/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to job file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the job file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	report, err := conf.Report()
	if err != nil {
		logger.Fatal("failed to compute job metrics",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range validation.InputWarnings(conf.WageTable(), report.Hours, report.Inputs) {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main"),
		)
	}

	logger.Debug("job metrics computed",
		zap.String("op", "main"),
		zap.String("customer", report.Customer),
		zap.Float64("totalCost", report.Metrics.TotalCost),
		zap.Float64("profit", report.Metrics.Profit),
		zap.String("status", string(report.Status)),
	)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(report)
	case constants.OutputFormatCSV:
		output.CsvFormat(report)
	case constants.OutputFormatJSON:
		output.JSONFormat(report)
	}
}
