package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/sartorproj/goarima/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pqerrors "prevqnt/internal/errors"
)

func defaultOrder() Order {
	return Order{P: 1, D: 1, Q: 1, SP: 1, SD: 1, SQ: 1, Period: 12}
}

// monthlySeries builds a seasonal monthly series of n points starting at
// start: a gentle upward trend plus a repeating yearly pattern.
func monthlySeries(start time.Time, n int) *timeseries.Series {
	dates := make([]time.Time, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		dates[i] = start.AddDate(0, i, 0)
		values[i] = 100 + 0.8*float64(i) + 15*math.Sin(2*math.Pi*float64(i%12)/12)
	}
	s, err := timeseries.NewWithTimestamps(dates, values)
	if err != nil {
		panic(err)
	}
	return s
}

func jan(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestFitAndPredict(t *testing.T) {
	// Jan 2023 through Aug 2025: 32 monthly observations.
	series := monthlySeries(jan(2023), 32)

	m := NewModel(defaultOrder())
	require.NoError(t, m.Fit(series))

	values, err := m.Predict(4)
	require.NoError(t, err)
	require.Len(t, values, 4)
	for _, v := range values {
		assert.False(t, math.IsNaN(v), "forecast must be finite")
		assert.False(t, math.IsInf(v, 0), "forecast must be finite")
	}
}

func TestFitIsDeterministic(t *testing.T) {
	series := monthlySeries(jan(2023), 36)

	m1 := NewModel(defaultOrder())
	require.NoError(t, m1.Fit(series))
	v1, err := m1.Predict(3)
	require.NoError(t, err)

	m2 := NewModel(defaultOrder())
	require.NoError(t, m2.Fit(series))
	v2, err := m2.Predict(3)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
}

func TestFitMinimumTwoCycles(t *testing.T) {
	m := NewModel(defaultOrder())
	require.NoError(t, m.Fit(monthlySeries(jan(2023), 24)))
}

func TestFitInsufficientData(t *testing.T) {
	m := NewModel(defaultOrder())
	err := m.Fit(monthlySeries(jan(2023), 23))
	require.Error(t, err)
	assert.Equal(t, pqerrors.KindInsufficientData, pqerrors.KindOf(err))
}

func TestPredictBeforeFit(t *testing.T) {
	m := NewModel(defaultOrder())
	_, err := m.Predict(4)
	require.Error(t, err)
	assert.Equal(t, pqerrors.KindModelFit, pqerrors.KindOf(err))
}

func TestPredictInvalidSteps(t *testing.T) {
	m := NewModel(defaultOrder())
	require.NoError(t, m.Fit(monthlySeries(jan(2023), 32)))
	_, err := m.Predict(0)
	require.Error(t, err)
	assert.Equal(t, pqerrors.KindModelFit, pqerrors.KindOf(err))
}

func TestOrderString(t *testing.T) {
	assert.Equal(t, "(1,1,1)(1,1,1,12)", defaultOrder().String())
}
