// Package config loads and validates the application configuration from
// environment variables (prefix BATT) layered over an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Cell     CellConfig     `yaml:"cell" envconfig:"CELL"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/battcli.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/raw"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/processed"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// PipelineConfig contains cycle-cleaning pipeline tuning
type PipelineConfig struct {
	MedianWindow     int     `yaml:"median_window" envconfig:"MEDIAN_WINDOW" default:"21" validate:"gte=1"`
	ShortWindow      int     `yaml:"short_window" envconfig:"SHORT_WINDOW" default:"5" validate:"gte=1"`
	DeviationFactor  float64 `yaml:"deviation_factor" envconfig:"DEVIATION_FACTOR" default:"3" validate:"gt=0"`
	DischargeFloorAh float64 `yaml:"discharge_floor_ah" envconfig:"DISCHARGE_FLOOR_AH" default:"0.1" validate:"gte=0"`
	EstimatorCycles  int     `yaml:"estimator_cycles" envconfig:"ESTIMATOR_CYCLES" default:"5" validate:"gte=1"`
	Workers          int     `yaml:"workers" envconfig:"WORKERS" default:"4" validate:"gte=1"`
}

// CellConfig contains the fixed metadata attached to every output record.
// These values describe the tested cells; they are never derived from data.
type CellConfig struct {
	FormFactor       string  `yaml:"form_factor" envconfig:"FORM_FACTOR" default:"unknown"`
	AnodeMaterial    string  `yaml:"anode_material" envconfig:"ANODE_MATERIAL" default:"unknown"`
	CathodeMaterial  string  `yaml:"cathode_material" envconfig:"CATHODE_MATERIAL" default:"unknown"`
	MaxVoltageLimitV float64 `yaml:"max_voltage_limit_v" envconfig:"MAX_VOLTAGE_LIMIT_V" default:"4.2" validate:"gtfield=MinVoltageLimitV"`
	MinVoltageLimitV float64 `yaml:"min_voltage_limit_v" envconfig:"MIN_VOLTAGE_LIMIT_V" default:"2.7" validate:"gt=0"`
	SOCIntervalLow   float64 `yaml:"soc_interval_low" envconfig:"SOC_INTERVAL_LOW" default:"0" validate:"gte=0,lte=1"`
	SOCIntervalHigh  float64 `yaml:"soc_interval_high" envconfig:"SOC_INTERVAL_HIGH" default:"1" validate:"gte=0,lte=1,gtefield=SOCIntervalLow"`
}

// Load loads configuration in increasing precedence: struct-tag defaults,
// then BATT_* environment variables, then an optional YAML file. The file
// path comes from BATT_CONFIG_FILE, defaulting to battcli.yaml in the
// working directory; a missing file is not an error.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BATT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := os.Getenv("BATT_CONFIG_FILE")
	if configFile == "" {
		configFile = "battcli.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := overlayFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded configuration values
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// overlayFromFile unmarshals a YAML file over the already-populated config,
// so only keys present in the file are replaced.
func overlayFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
