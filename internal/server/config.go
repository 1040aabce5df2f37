package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/swiftgentle/jobcost/internal/config"
	"github.com/swiftgentle/jobcost/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config is the jobcost-server configuration file: where to listen, where
// the SQLite database lives, how large a request body may be and when to
// snapshot the budget.
type Config struct {
	Address       string `yaml:"address"`
	MaxUploadSize string `yaml:"maxUploadSize"`
	DatabasePath  string `yaml:"databasePath"`
	// SnapshotSchedule is a 5-field cron expression; empty disables
	// budget snapshots.
	SnapshotSchedule string               `yaml:"snapshotSchedule"`
	Logging          config.LoggingConfig `yaml:"logging"`
	uploadSizeBytes  int64
}

func defaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		DatabasePath:    constants.DefaultDatabasePath,
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig reads the jobcost-server YAML file at path. An empty path or a
// missing file yields the defaults: listen on DefaultServerAddress, store
// jobs in DefaultDatabasePath, no snapshots.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read jobcost server config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode jobcost server config %s: %w", path, err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("jobcost server config %s: %w", path, err)
	}
	return cfg, nil
}

// UploadSizeBytes is the request body limit handed to NewHandler.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes applies the -max-upload-size flag. Non-positive sizes
// are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)
}

// applyDefaults fills blank fields and resolves maxUploadSize to bytes.
func (c *Config) applyDefaults() error {
	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	c.DatabasePath = strings.TrimSpace(c.DatabasePath)
	if c.DatabasePath == "" {
		c.DatabasePath = constants.DefaultDatabasePath
	}
	c.SnapshotSchedule = strings.TrimSpace(c.SnapshotSchedule)

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("maxUploadSize: %w", err)
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	c.SetUploadSizeBytes(size)
	return nil
}

// sizeUnits are binary multiples: "1K" is 1024 bytes.
var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// ParseSize turns a request body limit such as "512", "256K" or "1MB" into
// bytes. Units are case-insensitive. A blank value means
// DefaultMaxUploadSizeBytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	split := strings.LastIndexFunc(trimmed, unicode.IsDigit) + 1
	if split == 0 {
		return 0, fmt.Errorf("size %q has no number", value)
	}
	digits := strings.TrimSpace(trimmed[:split])
	unit := strings.ToUpper(strings.TrimSpace(trimmed[split:]))

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("size %q: %w", value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("size %q is negative", value)
	}
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("size %q: unknown unit %q (use B, K, M or G)", value, unit)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q does not fit in 64 bits", value)
	}
	return n * multiplier, nil
}
