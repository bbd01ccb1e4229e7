package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pqerrors "prevqnt/internal/errors"
)

// BuildSeries drops rows without a usable date or quantity, sorts the rest
// ascending by date and returns the observation series. Duplicate dates are
// kept as given; the model receives them untouched.
func BuildSeries(t *Table, dates *DateParseResult, quantityColumn string) ([]Observation, error) {
	quantities, ok := t.Column(quantityColumn)
	if !ok {
		return nil, pqerrors.NewConfigError(
			fmt.Sprintf("a coluna de quantidade '%s' não existe na aba '%s' (colunas encontradas: %s)",
				quantityColumn, t.Sheet, strings.Join(t.Columns, ", ")), nil).
			WithHint(fmt.Sprintf("Renomeie a coluna de quantidades para '%s' ou verifique a aba selecionada.", quantityColumn))
	}

	series := make([]Observation, 0, len(quantities))
	for i, raw := range quantities {
		if !dates.Valid[i] {
			continue
		}
		q, ok := parseQuantity(raw)
		if !ok {
			continue
		}
		series = append(series, Observation{Date: dates.Dates[i], Quantity: q})
	}

	if len(series) == 0 {
		return nil, pqerrors.NewDataFormatError(
			fmt.Sprintf("nenhuma linha válida na aba '%s' após a limpeza", t.Sheet), nil).
			WithHint(fmt.Sprintf("Verifique se a coluna '%s' contém valores numéricos.", quantityColumn))
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series, nil
}

// parseQuantity parses a spreadsheet cell as a number. Empty cells are
// missing values. Brazilian sheets may use comma as the decimal separator,
// and thousands separators show up either way.
func parseQuantity(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// "1.234,56": dots are thousands separators.
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}
