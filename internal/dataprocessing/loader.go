// Package dataprocessing loads the workbook-resident time series and turns it
// into a clean, chronologically ordered observation series.
package dataprocessing

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	pqerrors "prevqnt/internal/errors"
)

// LoadTable reads the named sheet of the workbook at path into a Table.
// The first row is the header; column names are trimmed the way the sheet's
// author may not have. Short rows are padded to the header width.
func LoadTable(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pqerrors.NewConfigError(
			fmt.Sprintf("erro ao abrir o arquivo '%s'", path), err).
			WithHint("Verifique se o nome do arquivo e da aba estão corretos.")
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, pqerrors.NewConfigError(
			fmt.Sprintf("erro ao ler a aba '%s'", sheet), err).
			WithHint("Verifique se o nome do arquivo e da aba estão corretos.")
	}
	if len(rows) == 0 {
		return nil, pqerrors.NewConfigError(
			fmt.Sprintf("a aba '%s' está vazia", sheet), nil).
			WithHint("Verifique se a aba selecionada contém um cabeçalho e dados.")
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		for i := range header {
			if i < len(row) {
				padded[i] = strings.TrimSpace(row[i])
			}
		}
		data = append(data, padded)
	}

	return &Table{Sheet: sheet, Columns: header, Rows: data}, nil
}
