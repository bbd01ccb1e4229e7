// Package app drives the forecast pipeline: load, resolve, normalize, clean,
// fit, write. Each stage is a pure function of the previous stage's output
// plus configuration; the first failure stops the run.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sartorproj/goarima/timeseries"

	"prevqnt/internal/config"
	"prevqnt/internal/dataprocessing"
	pqerrors "prevqnt/internal/errors"
	"prevqnt/internal/exporter"
	"prevqnt/internal/forecast"
)

// Result summarizes a completed run for the operator-facing output.
type Result struct {
	// NoOp is true when the data already reaches the final month and
	// nothing was forecast or written.
	NoOp         bool
	DateColumn   string
	Observations int
	LastObserved time.Time
	Horizon      int
	Points       []forecast.Point
	Writes       []exporter.CellWrite
}

// Run executes the whole pipeline against the configured workbook.
func Run(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	table, err := dataprocessing.LoadTable(cfg.Workbook.Path, cfg.Workbook.DataSheet)
	if err != nil {
		return nil, err
	}
	logger.Info("aba carregada",
		slog.String("sheet", cfg.Workbook.DataSheet),
		slog.Int("rows", table.RowCount()),
		slog.Any("columns", table.Columns))

	dateColumn, err := dataprocessing.ResolveDateColumn(table)
	if err != nil {
		return nil, err
	}
	logger.Info("coluna de datas detectada", slog.String("column", dateColumn))

	values, _ := table.Column(dateColumn)
	dates, err := dataprocessing.NormalizeDates(dateColumn, values)
	if err != nil {
		return nil, err
	}
	if dates.UsedFallback {
		logger.Warn("a coluna de datas foi convertida usando um parser flexível",
			slog.String("column", dateColumn),
			slog.Int("invalid_values", dates.InvalidCount))
	}

	series, err := dataprocessing.BuildSeries(table, dates, cfg.Workbook.QuantityColumn)
	if err != nil {
		return nil, err
	}

	last := series[len(series)-1].Date
	logger.Info("série construída",
		slog.Int("observations", len(series)),
		slog.String("last_observed", last.Format("01/2006")),
		slog.Int("target_year", cfg.Forecast.TargetYear))

	// The horizon formula only looks at the month of year; refuse to
	// forecast when the data already passed the target year, where the
	// derived dates would be meaningless.
	if last.Year() > cfg.Forecast.TargetYear {
		return nil, pqerrors.NewConsistencyError(
			fmt.Sprintf("a última observação é de %d, posterior ao ano alvo %d",
				last.Year(), cfg.Forecast.TargetYear)).
			WithHint("Ajuste o ano alvo na configuração ou verifique a aba selecionada.")
	}

	result := &Result{
		DateColumn:   dateColumn,
		Observations: len(series),
		LastObserved: last,
	}

	steps := forecast.Horizon(last, cfg.Forecast.FinalMonth)
	result.Horizon = steps
	if steps <= 0 {
		result.NoOp = true
		logger.Info("os dados já estão completos, nada a prever",
			slog.Int("final_month", cfg.Forecast.FinalMonth),
			slog.String("last_observed", last.Format("01/2006")))
		return result, nil
	}

	timestamps := make([]time.Time, len(series))
	quantities := make([]float64, len(series))
	for i, obs := range series {
		timestamps[i] = obs.Date
		quantities[i] = obs.Quantity
	}
	ts, err := timeseries.NewWithTimestamps(timestamps, quantities)
	if err != nil {
		return nil, pqerrors.NewModelFitError("erro ao montar a série temporal", err)
	}

	order := forecast.Order{
		P: cfg.Forecast.P, D: cfg.Forecast.D, Q: cfg.Forecast.Q,
		SP: cfg.Forecast.SeasonalP, SD: cfg.Forecast.SeasonalD, SQ: cfg.Forecast.SeasonalQ,
		Period: cfg.Forecast.Period,
	}
	model := forecast.NewModel(order)

	logger.Info("treinando o modelo SARIMA", slog.String("order", order.String()))
	if err := model.Fit(ts); err != nil {
		return nil, err
	}
	logger.Info("modelo treinado com sucesso")

	predicted, err := model.Predict(steps)
	if err != nil {
		return nil, err
	}
	result.Points = forecast.PointsFrom(last, predicted)
	for _, p := range result.Points {
		logger.Info("previsão calculada",
			slog.String("month", p.Date.Format("01/2006")),
			slog.Int64("quantity", p.Rounded()))
	}

	writes, err := exporter.WriteForecasts(
		cfg.Workbook.Path,
		cfg.Workbook.TargetSheet,
		cfg.Workbook.TargetColumn,
		cfg.Workbook.TargetRows,
		result.Points,
	)
	if err != nil {
		return nil, err
	}
	result.Writes = writes

	logger.Info("previsões salvas",
		slog.Int("count", len(writes)),
		slog.String("workbook", cfg.Workbook.Path))
	return result, nil
}
