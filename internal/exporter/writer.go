// Package exporter writes the rounded forecasts into the fixed cells of the
// target sheet and saves the workbook once.
package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	pqerrors "prevqnt/internal/errors"
	"prevqnt/internal/forecast"
)

// CellWrite records one staged cell assignment, for the operator summary.
type CellWrite struct {
	Cell  string
	Value int64
	Month string
}

// WriteForecasts writes point i into (rows[i], column) on the named sheet,
// creating the sheet when absent, and saves the workbook exactly once. The
// forecast count must match the configured row count; a mismatch fails
// before anything is opened. On any failure before the save the on-disk
// file keeps its prior state.
func WriteForecasts(path, sheet string, column int, rows []int, points []forecast.Point) ([]CellWrite, error) {
	if len(points) != len(rows) {
		return nil, pqerrors.NewConsistencyError(
			fmt.Sprintf("o modelo gerou %d previsões, mas a configuração especifica %d linhas",
				len(points), len(rows))).
			WithHint("Ajuste o número de meses a prever ou as linhas alvo na configuração.")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pqerrors.NewPersistenceError(
			fmt.Sprintf("erro ao abrir a planilha '%s' para escrita", path), err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		slog.Warn("aba de destino não encontrada, criando uma nova", slog.String("sheet", sheet))
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, pqerrors.NewPersistenceError(
				fmt.Sprintf("erro ao criar a aba '%s'", sheet), err)
		}
	}

	writes := make([]CellWrite, 0, len(points))
	for i, p := range points {
		cell, err := excelize.CoordinatesToCellName(column, rows[i])
		if err != nil {
			return nil, pqerrors.NewPersistenceError(
				fmt.Sprintf("coordenada de célula inválida (linha %d, coluna %d)", rows[i], column), err)
		}
		if err := f.SetCellValue(sheet, cell, p.Rounded()); err != nil {
			return nil, pqerrors.NewPersistenceError(
				fmt.Sprintf("erro ao escrever na célula %s", cell), err)
		}
		writes = append(writes, CellWrite{Cell: cell, Value: p.Rounded(), Month: p.MonthName()})
		slog.Info("previsão escrita",
			slog.String("cell", cell),
			slog.Int64("value", p.Rounded()),
			slog.String("month", p.MonthName()))
	}

	if err := f.Save(); err != nil {
		return nil, pqerrors.NewPersistenceError(
			fmt.Sprintf("erro ao salvar a planilha '%s'", path), err).
			WithHint("As previsões NÃO foram salvas.")
	}
	return writes, nil
}
