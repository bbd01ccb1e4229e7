package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pqerrors "prevqnt/internal/errors"
)

func TestNormalizeDatesStrict(t *testing.T) {
	res, err := NormalizeDates("Data", []string{"01/2024", "08/2025", "12/2025"})
	require.NoError(t, err)

	assert.False(t, res.UsedFallback)
	assert.Zero(t, res.InvalidCount)
	require.Len(t, res.Dates, 3)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), res.Dates[0])
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), res.Dates[1])
	for _, ok := range res.Valid {
		assert.True(t, ok)
	}
}

func TestNormalizeDatesSingleBadValueTriggersFallback(t *testing.T) {
	// One non-conforming value must force the lenient pass for the whole
	// column, never a partial strict result.
	res, err := NormalizeDates("Data", []string{"01/2025", "15/03/2025", "03/2025"})
	require.NoError(t, err)

	assert.True(t, res.UsedFallback)
	assert.Zero(t, res.InvalidCount)
	// Day-first: 15/03/2025 is the 15th of March.
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), res.Dates[1])
}

func TestNormalizeDatesLenientPartialLoss(t *testing.T) {
	res, err := NormalizeDates("Data", []string{"15/03/2025", "não é data", "08/25"})
	require.NoError(t, err)

	assert.True(t, res.UsedFallback)
	assert.Equal(t, 1, res.InvalidCount)
	assert.True(t, res.Valid[0])
	assert.False(t, res.Valid[1])
	assert.True(t, res.Valid[2])
	// "08/25" reads as month/two-digit-year.
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), res.Dates[2])
}

func TestNormalizeDatesAllInvalid(t *testing.T) {
	_, err := NormalizeDates("Data", []string{"abc", "", "???"})
	require.Error(t, err)
	assert.Equal(t, pqerrors.KindDataFormat, pqerrors.KindOf(err))
}

func TestNormalizeDatesISOFallback(t *testing.T) {
	res, err := NormalizeDates("Data", []string{"2025-01-01", "2025-02-01"})
	require.NoError(t, err)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), res.Dates[1])
}
