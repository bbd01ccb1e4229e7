package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pqerrors "prevqnt/internal/errors"
)

func tableWithColumns(cols ...string) *Table {
	return &Table{Sheet: "dados_para_analise", Columns: cols}
}

func TestResolveDateColumnExactMatchWins(t *testing.T) {
	// A heuristically matching column comes first, but the exact "Data"
	// column must still be selected.
	tbl := tableWithColumns("Mes de referencia", "Data", "QNT")
	col, err := ResolveDateColumn(tbl)
	require.NoError(t, err)
	assert.Equal(t, "Data", col)
}

func TestResolveDateColumnHeuristics(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    string
	}{
		{"substring data", []string{"QNT", "Data de venda"}, "Data de venda"},
		{"substring mes", []string{"QNT", "Mes"}, "Mes"},
		{"substring mês accented", []string{"QNT", "Mês de referência"}, "Mês de referência"},
		{"substring month", []string{"QNT", "Month"}, "Month"},
		{"substring date", []string{"QNT", "Sale Date"}, "Sale Date"},
		{"first match wins", []string{"Periodo mes", "Data de venda"}, "Periodo mes"},
		{"case insensitive", []string{"QNT", "DATA VENDA"}, "DATA VENDA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := ResolveDateColumn(tableWithColumns(tt.columns...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, col)
		})
	}
}

func TestResolveDateColumnNotFound(t *testing.T) {
	tbl := tableWithColumns("QNT", "Produto", "Valor")
	_, err := ResolveDateColumn(tbl)
	require.Error(t, err)
	assert.Equal(t, pqerrors.KindConfig, pqerrors.KindOf(err))
	// The diagnostic lists the actual columns for the operator.
	assert.Contains(t, err.Error(), "QNT")
	assert.Contains(t, err.Error(), "Produto")
	assert.Contains(t, err.Error(), "Valor")
}
