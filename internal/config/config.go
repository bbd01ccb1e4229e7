// Package config holds the fixed configuration of a forecast run: where the
// workbook lives, which sheets and cells to touch, and the model order.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete tool configuration.
type Config struct {
	Workbook WorkbookConfig `yaml:"workbook" envconfig:"WORKBOOK"`
	Forecast ForecastConfig `yaml:"forecast" envconfig:"FORECAST"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// WorkbookConfig locates the input sheet and the output cells.
type WorkbookConfig struct {
	Path           string `yaml:"path" envconfig:"PATH"`
	DataSheet      string `yaml:"data_sheet" envconfig:"DATA_SHEET"`
	QuantityColumn string `yaml:"quantity_column" envconfig:"QUANTITY_COLUMN"`
	TargetSheet    string `yaml:"target_sheet" envconfig:"TARGET_SHEET"`
	TargetColumn   int    `yaml:"target_column" envconfig:"TARGET_COLUMN"`
	TargetRows     []int  `yaml:"target_rows" envconfig:"TARGET_ROWS"`
}

// ForecastConfig fixes the forecast target and the SARIMA order.
type ForecastConfig struct {
	TargetYear int `yaml:"target_year" envconfig:"TARGET_YEAR"`
	FinalMonth int `yaml:"final_month" envconfig:"FINAL_MONTH"`

	P int `yaml:"p" envconfig:"P"`
	D int `yaml:"d" envconfig:"D"`
	Q int `yaml:"q" envconfig:"Q"`

	SeasonalP int `yaml:"seasonal_p" envconfig:"SEASONAL_P"`
	SeasonalD int `yaml:"seasonal_d" envconfig:"SEASONAL_D"`
	SeasonalQ int `yaml:"seasonal_q" envconfig:"SEASONAL_Q"`
	Period    int `yaml:"period" envconfig:"PERIOD"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the configuration the tool ships with. The cell targets
// match the layout of the "graficos" sheet: column F, rows 11 through 14,
// one row per remaining month of the target year.
func Default() *Config {
	return &Config{
		Workbook: WorkbookConfig{
			Path:           "Dados teste.xlsx",
			DataSheet:      "dados_para_analise",
			QuantityColumn: "QNT",
			TargetSheet:    "graficos",
			TargetColumn:   6,
			TargetRows:     []int{11, 12, 13, 14},
		},
		Forecast: ForecastConfig{
			TargetYear: 2025,
			FinalMonth: 12,
			P:          1, D: 1, Q: 1,
			SeasonalP: 1, SeasonalD: 1, SeasonalQ: 1,
			Period: 12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "console",
		},
	}
}

// Load builds the configuration: defaults, overridden by the YAML file at
// configPath when it exists, overridden by PREVQNT_* environment variables.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("PREVQNT", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate performs the schema check once so every later stage can rely on
// well-formed configuration.
func (c *Config) Validate() error {
	if c.Workbook.Path == "" {
		return fmt.Errorf("workbook path is required")
	}
	if c.Workbook.DataSheet == "" {
		return fmt.Errorf("workbook data sheet is required")
	}
	if c.Workbook.QuantityColumn == "" {
		return fmt.Errorf("workbook quantity column is required")
	}
	if c.Workbook.TargetSheet == "" {
		return fmt.Errorf("workbook target sheet is required")
	}
	if c.Workbook.TargetColumn < 1 {
		return fmt.Errorf("workbook target column must be >= 1, got %d", c.Workbook.TargetColumn)
	}
	if len(c.Workbook.TargetRows) == 0 {
		return fmt.Errorf("workbook target rows are required")
	}
	for _, r := range c.Workbook.TargetRows {
		if r < 1 {
			return fmt.Errorf("workbook target rows must be >= 1, got %d", r)
		}
	}
	if !sort.IntsAreSorted(c.Workbook.TargetRows) {
		return fmt.Errorf("workbook target rows must be ascending")
	}
	if c.Forecast.FinalMonth < 1 || c.Forecast.FinalMonth > 12 {
		return fmt.Errorf("forecast final month must be 1..12, got %d", c.Forecast.FinalMonth)
	}
	if c.Forecast.TargetYear < 1 {
		return fmt.Errorf("forecast target year must be positive, got %d", c.Forecast.TargetYear)
	}
	if c.Forecast.P < 0 || c.Forecast.D < 0 || c.Forecast.Q < 0 ||
		c.Forecast.SeasonalP < 0 || c.Forecast.SeasonalD < 0 || c.Forecast.SeasonalQ < 0 {
		return fmt.Errorf("model orders must be non-negative")
	}
	if c.Forecast.Period < 1 {
		return fmt.Errorf("seasonal period must be >= 1, got %d", c.Forecast.Period)
	}
	return nil
}
