// Package config defines the job file structure and the functions that load
// it and turn it into cost engine inputs.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/swiftgentle/jobcost/pkg/analysis"
	"github.com/swiftgentle/jobcost/pkg/budget"
	"github.com/swiftgentle/jobcost/pkg/costing"
	"github.com/swiftgentle/jobcost/pkg/roster"
)

// Configuration holds a job file.
type Configuration struct {
	Logging       LoggingConfig          `yaml:"logging,omitempty"`
	Output        OutputConfig           `yaml:"output,omitempty"`
	Customer      string                 `yaml:"customer,omitempty"`
	Job           Job                    `yaml:"job"`
	RevenueSource analysis.RevenueSource `yaml:"revenueSource,omitempty"`
	Employees     map[string]float64     `yaml:"employees,omitempty"`
	Hours         map[string]float64     `yaml:"hours,omitempty"`
	Budget        Budget                 `yaml:"budget,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Job holds the revenue and direct costs of the job. A nil
// OverheadPercentage means the file did not set one.
type Job struct {
	Revenue            float64  `yaml:"revenue"`
	FuelCost           float64  `yaml:"fuelCost"`
	VehicleCosts       float64  `yaml:"vehicleCosts"`
	EquipmentCosts     float64  `yaml:"equipmentCosts"`
	MaterialsCosts     float64  `yaml:"materialsCosts"`
	OverheadPercentage *float64 `yaml:"overheadPercentage,omitempty"`
}

// Budget holds the departmental budget section.
type Budget struct {
	MonthlyRevenue float64                       `yaml:"monthlyRevenue"`
	Departments    map[string]map[string]float64 `yaml:"departments,omitempty"`
}

// keyDelimiter replaces viper's default "." so employee names such as
// "j.smith" stay single keys under employees and hours.
const keyDelimiter = "::"

func newViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// JobInputs converts the job section into engine inputs, filling in the
// default overhead when the file leaves it unset.
func (c *Configuration) JobInputs() costing.JobInputs {
	overhead := costing.DefaultOverheadPercentage
	if c.Job.OverheadPercentage != nil {
		overhead = *c.Job.OverheadPercentage
	}
	return costing.JobInputs{
		JobRevenue:         c.Job.Revenue,
		FuelCost:           c.Job.FuelCost,
		VehicleCosts:       c.Job.VehicleCosts,
		EquipmentCosts:     c.Job.EquipmentCosts,
		MaterialsCosts:     c.Job.MaterialsCosts,
		OverheadPercentage: overhead,
	}
}

// NewJobFile builds a job file that reproduces a job when loaded. The
// overhead is always written out so the default never replaces it.
func NewJobFile(customer string, in costing.JobInputs, wages costing.WageTable, hours costing.HoursTable) Configuration {
	overhead := in.OverheadPercentage
	return Configuration{
		Customer: customer,
		Job: Job{
			Revenue:            in.JobRevenue,
			FuelCost:           in.FuelCost,
			VehicleCosts:       in.VehicleCosts,
			EquipmentCosts:     in.EquipmentCosts,
			MaterialsCosts:     in.MaterialsCosts,
			OverheadPercentage: &overhead,
		},
		Employees: wages.Clone(),
		Hours:     hours.Clone(),
	}
}

// WageTable returns the normalized employee wages, or the default roster
// when the file lists none.
func (c *Configuration) WageTable() costing.WageTable {
	if len(c.Employees) == 0 {
		return roster.DefaultWages()
	}
	return roster.Normalize(c.Employees)
}

// HoursTable returns the normalized hours worked.
func (c *Configuration) HoursTable() costing.HoursTable {
	return roster.NormalizeHours(c.Hours)
}

// Departments returns the budget departments, or the default budget when
// the file lists none.
func (c *Configuration) Departments() budget.Departments {
	if len(c.Budget.Departments) == 0 {
		return budget.DefaultDepartments()
	}
	return budget.Departments(c.Budget.Departments).Clone()
}

// Report computes the job's metrics against the configured revenue source
// and assembles the full report.
func (c *Configuration) Report() (analysis.Report, error) {
	hours := c.HoursTable()
	inputs, metrics, err := analysis.ComputeWithRevenue(c.RevenueSource, c.WageTable(), hours, c.JobInputs())
	if err != nil {
		return analysis.Report{}, err
	}
	return analysis.NewReport(c.Customer, hours, inputs, metrics), nil
}
