package dataprocessing

import "time"

// Table is the typed view of one workbook sheet: a header of column names in
// declared order plus the data rows below it. Rows shorter than the header
// are padded so every column lookup is total.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Column returns the values of the named column, one per data row, and
// whether the column exists.
func (t *Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Observation is one cleaned (date, quantity) data point.
type Observation struct {
	Date     time.Time
	Quantity float64
}

// DateParseResult is the outcome of normalizing the date column. Valid[i]
// reports whether Dates[i] holds a real date; on the strict path every entry
// is valid, on the lenient fallback some may not be.
type DateParseResult struct {
	Dates        []time.Time
	Valid        []bool
	UsedFallback bool
	InvalidCount int
}
