package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "dados_para_analise", cfg.Workbook.DataSheet)
	assert.Equal(t, "QNT", cfg.Workbook.QuantityColumn)
	assert.Equal(t, "graficos", cfg.Workbook.TargetSheet)
	assert.Equal(t, 6, cfg.Workbook.TargetColumn)
	assert.Equal(t, []int{11, 12, 13, 14}, cfg.Workbook.TargetRows)
	assert.Equal(t, 12, cfg.Forecast.FinalMonth)
	assert.Equal(t, 12, cfg.Forecast.Period)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`workbook:
  path: vendas.xlsx
  data_sheet: dados
forecast:
  target_year: 2026
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vendas.xlsx", cfg.Workbook.Path)
	assert.Equal(t, "dados", cfg.Workbook.DataSheet)
	assert.Equal(t, 2026, cfg.Forecast.TargetYear)
	// Untouched fields keep their defaults.
	assert.Equal(t, "graficos", cfg.Workbook.TargetSheet)
	assert.Equal(t, []int{11, 12, 13, 14}, cfg.Workbook.TargetRows)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PREVQNT_WORKBOOK_PATH", "ambiente.xlsx")
	t.Setenv("PREVQNT_FORECAST_FINAL_MONTH", "10")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ambiente.xlsx", cfg.Workbook.Path)
	assert.Equal(t, 10, cfg.Forecast.FinalMonth)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Workbook, cfg.Workbook)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty path", func(c *Config) { c.Workbook.Path = "" }},
		{"empty data sheet", func(c *Config) { c.Workbook.DataSheet = "" }},
		{"empty quantity column", func(c *Config) { c.Workbook.QuantityColumn = "" }},
		{"empty target sheet", func(c *Config) { c.Workbook.TargetSheet = "" }},
		{"zero target column", func(c *Config) { c.Workbook.TargetColumn = 0 }},
		{"no target rows", func(c *Config) { c.Workbook.TargetRows = nil }},
		{"zero target row", func(c *Config) { c.Workbook.TargetRows = []int{0, 11} }},
		{"unsorted target rows", func(c *Config) { c.Workbook.TargetRows = []int{12, 11} }},
		{"final month out of range", func(c *Config) { c.Forecast.FinalMonth = 13 }},
		{"zero target year", func(c *Config) { c.Forecast.TargetYear = 0 }},
		{"negative order", func(c *Config) { c.Forecast.D = -1 }},
		{"zero period", func(c *Config) { c.Forecast.Period = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
