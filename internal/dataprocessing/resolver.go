package dataprocessing

import (
	"fmt"
	"strings"

	pqerrors "prevqnt/internal/errors"
)

// exactDateColumn is preferred over any heuristic match.
const exactDateColumn = "Data"

// dateColumnHints are matched as substrings of the lowercased column name,
// in the table's declared column order; first match wins.
var dateColumnHints = []string{"data", "mes", "mês", "month", "date"}

// ResolveDateColumn locates the date column of the table: the column named
// exactly "Data" when present, otherwise the first column whose lowercased
// name contains one of the date hints.
func ResolveDateColumn(t *Table) (string, error) {
	for _, c := range t.Columns {
		if c == exactDateColumn {
			return c, nil
		}
	}
	for _, c := range t.Columns {
		lower := strings.ToLower(c)
		for _, hint := range dateColumnHints {
			if strings.Contains(lower, hint) {
				return c, nil
			}
		}
	}
	return "", pqerrors.NewConfigError(
		fmt.Sprintf("não foi possível encontrar uma coluna de datas na aba '%s' (colunas encontradas: %s)",
			t.Sheet, strings.Join(t.Columns, ", ")), nil).
		WithHint("Renomeie a coluna de datas para 'Data' ou verifique a aba selecionada.")
}
