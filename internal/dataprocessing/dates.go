package dataprocessing

import (
	"fmt"
	"strings"
	"time"

	pqerrors "prevqnt/internal/errors"
)

// strictDateLayout is the expected month/year form, e.g. "08/2025".
const strictDateLayout = "01/2006"

// lenientDateLayouts is the day-first fallback, tried in order. Spreadsheet
// date columns are frequently free text in mixed formats; strict parsing is
// preferred when it fully succeeds (it cannot confuse day and month), the
// lenient pass is the safety net.
var lenientDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"2006-01-02",
	"01/2006",
	"01/06",
}

// NormalizeDates converts the resolved date column to calendar dates.
// First every value is parsed strictly as month/year; if any value fails,
// the whole column is re-parsed leniently and unparseable values become
// invalid entries instead of failing the run. Only a column with no parseable
// value at all is an error.
func NormalizeDates(column string, values []string) (*DateParseResult, error) {
	res := &DateParseResult{
		Dates: make([]time.Time, len(values)),
		Valid: make([]bool, len(values)),
	}

	strict := true
	for i, v := range values {
		d, err := time.Parse(strictDateLayout, strings.TrimSpace(v))
		if err != nil {
			strict = false
			break
		}
		res.Dates[i] = d
		res.Valid[i] = true
	}
	if strict {
		return res, nil
	}

	res.UsedFallback = true
	parsed := 0
	for i, v := range values {
		d, ok := parseLenient(strings.TrimSpace(v))
		res.Dates[i] = d
		res.Valid[i] = ok
		if ok {
			parsed++
		}
	}
	res.InvalidCount = len(values) - parsed

	if parsed == 0 {
		return nil, pqerrors.NewDataFormatError(
			fmt.Sprintf("não foi possível converter a coluna '%s' para datas", column), nil).
			WithHint("Verifique os valores e o formato (ex: '08/2025' ou '08/25').")
	}
	return res, nil
}

func parseLenient(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range lenientDateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
