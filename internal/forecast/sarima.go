// Package forecast fits a seasonal ARIMA model to the monthly observation
// series and produces point forecasts for the remaining months of the year.
package forecast

import (
	"fmt"
	"math"

	"github.com/sartorproj/goarima/stats"
	"github.com/sartorproj/goarima/timeseries"

	pqerrors "prevqnt/internal/errors"
)

// Order is the SARIMA model order (p, d, q) x (P, D, Q, period).
type Order struct {
	P, D, Q    int
	SP, SD, SQ int
	Period     int
}

// String renders the order the way the literature writes it.
func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)(%d,%d,%d,%d)", o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.Period)
}

// MinObservations is the smallest series the model accepts: two full
// seasonal cycles, e.g. 24 points for monthly data.
func (o Order) MinObservations() int {
	return 2 * o.Period
}

// Model is a SARIMA model estimated by conditional sum of squares.
type Model struct {
	Order     Order
	AR        []float64
	MA        []float64
	SAR       []float64
	SMA       []float64
	Intercept float64
	Variance  float64

	fitted    bool
	data      *timeseries.Series
	diff      *timeseries.Series
	residuals []float64
}

// NewModel creates an unfitted model with the given order.
func NewModel(o Order) *Model {
	return &Model{
		Order: o,
		AR:    make([]float64, o.P),
		MA:    make([]float64, o.Q),
		SAR:   make([]float64, o.SP),
		SMA:   make([]float64, o.SQ),
	}
}

// Fit estimates the model on the given series. The series must hold at
// least two full seasonal cycles of observations.
func (m *Model) Fit(series *timeseries.Series) error {
	min := m.Order.MinObservations()
	if series.Len() < min {
		return pqerrors.NewInsufficientDataError(
			fmt.Sprintf("dados insuficientes para a análise: %d observações, mínimo %d (2 ciclos sazonais)",
				series.Len(), min)).
			WithHint("Verifique se há dados suficientes para a análise (pelo menos 2 ciclos sazonais, ex: 24 meses).")
	}

	m.data = series

	diff := series
	for i := 0; i < m.Order.D; i++ {
		diff = diff.Diff()
	}
	for i := 0; i < m.Order.SD; i++ {
		diff = diff.SeasonalDiff(m.Order.Period)
	}
	if diff.Len() < 2 {
		return pqerrors.NewInsufficientDataError(
			fmt.Sprintf("dados insuficientes após a diferenciação: restaram %d pontos", diff.Len())).
			WithHint("Verifique se há dados suficientes para a análise (pelo menos 2 ciclos sazonais, ex: 24 meses).")
	}
	m.diff = diff

	if err := m.estimate(); err != nil {
		return err
	}
	m.fitted = true
	return nil
}

// estimate minimizes the conditional sum of squares with momentum gradient
// descent. AR terms are seeded from the autocorrelation function, MA terms
// from a small constant; every coefficient stays clamped inside the unit
// interval to keep the recursion stable.
func (m *Model) estimate() error {
	y := m.diff.Values
	n := len(y)
	o := m.Order

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	m.Intercept = mean

	if o.P > 0 {
		if acf := stats.ACF(m.diff, o.P); acf != nil {
			for i := 0; i < o.P && i+1 < len(acf); i++ {
				m.AR[i] = acf[i+1] * 0.5
			}
		}
	}
	if o.SP > 0 {
		if acf := stats.ACF(m.diff, o.SP*o.Period); acf != nil {
			for i := 0; i < o.SP; i++ {
				if idx := (i + 1) * o.Period; idx < len(acf) {
					m.SAR[i] = acf[idx] * 0.5
				}
			}
		}
	}
	for i := range m.MA {
		m.MA[i] = 0.1
	}
	for i := range m.SMA {
		m.SMA[i] = 0.1
	}

	const (
		maxIter      = 200
		tolerance    = 1e-8
		momentum     = 0.9
		decay        = 0.99
		maxNoImprove = 20
	)
	learningRate := 0.005

	arVel := make([]float64, o.P)
	maVel := make([]float64, o.Q)
	sarVel := make([]float64, o.SP)
	smaVel := make([]float64, o.SQ)

	startIdx := max(max(o.P, o.Q), max(o.SP*o.Period, o.SQ*o.Period))
	if startIdx >= n-10 {
		startIdx = 0
	}

	bestSSE := math.Inf(1)
	bestAR := make([]float64, o.P)
	bestMA := make([]float64, o.Q)
	bestSAR := make([]float64, o.SP)
	bestSMA := make([]float64, o.SQ)
	noImprove := 0

	for iter := 0; iter < maxIter; iter++ {
		residuals := make([]float64, n)
		sse := 0.0
		for t := startIdx; t < n; t++ {
			residuals[t] = y[t] - m.predictOne(y, residuals, t, n)
			sse += residuals[t] * residuals[t]
		}

		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return pqerrors.NewModelFitError(
				"erro ao treinar o modelo SARIMA: a otimização divergiu", nil).
				WithHint("Verifique se há dados suficientes para a análise (pelo menos 2 ciclos sazonais, ex: 24 meses).")
		}

		if sse < bestSSE {
			copy(bestAR, m.AR)
			copy(bestMA, m.MA)
			copy(bestSAR, m.SAR)
			copy(bestSMA, m.SMA)
			noImprove = 0
			if iter > 0 && math.Abs(bestSSE-sse) < tolerance {
				bestSSE = sse
				break
			}
			bestSSE = sse
		} else {
			noImprove++
			if noImprove > maxNoImprove {
				break
			}
		}

		arGrad := make([]float64, o.P)
		maGrad := make([]float64, o.Q)
		sarGrad := make([]float64, o.SP)
		smaGrad := make([]float64, o.SQ)
		for t := startIdx; t < n; t++ {
			for i := 0; i < o.P && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.Intercept)
			}
			for i := 0; i < o.SP; i++ {
				if lag := (i + 1) * o.Period; t-lag >= 0 {
					sarGrad[i] -= 2 * residuals[t] * (y[t-lag] - m.Intercept)
				}
			}
			for i := 0; i < o.Q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
			for i := 0; i < o.SQ; i++ {
				if lag := (i + 1) * o.Period; t-lag >= 0 {
					smaGrad[i] -= 2 * residuals[t] * residuals[t-lag]
				}
			}
		}

		step := func(coeffs, vel, grad []float64) {
			for i := range coeffs {
				vel[i] = momentum*vel[i] + learningRate*grad[i]/float64(n)
				coeffs[i] = clamp(coeffs[i]-vel[i], -0.99, 0.99)
			}
		}
		step(m.AR, arVel, arGrad)
		step(m.SAR, sarVel, sarGrad)
		step(m.MA, maVel, maGrad)
		step(m.SMA, smaVel, smaGrad)

		learningRate *= decay
	}

	copy(m.AR, bestAR)
	copy(m.MA, bestMA)
	copy(m.SAR, bestSAR)
	copy(m.SMA, bestSMA)

	m.residuals = make([]float64, n)
	for t := 0; t < n; t++ {
		m.residuals[t] = y[t] - m.predictOne(y, m.residuals, t, n)
	}

	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	params := o.P + o.Q + o.SP + o.SQ + 1
	if count > params {
		m.Variance = sse / float64(count-params)
	} else if count > 0 {
		m.Variance = sse / float64(count)
	}

	return nil
}

// predictOne computes the one-step prediction at index t over the extended
// arrays y and residuals; residuals past index bound are unknown (zero).
func (m *Model) predictOne(y, residuals []float64, t, bound int) float64 {
	o := m.Order
	pred := m.Intercept
	for i := 0; i < o.P && t-i-1 >= 0; i++ {
		pred += m.AR[i] * (y[t-i-1] - m.Intercept)
	}
	for i := 0; i < o.SP; i++ {
		if lag := (i + 1) * o.Period; t-lag >= 0 {
			pred += m.SAR[i] * (y[t-lag] - m.Intercept)
		}
	}
	for i := 0; i < o.Q && t-i-1 >= 0; i++ {
		if t-i-1 < bound {
			pred += m.MA[i] * residuals[t-i-1]
		}
	}
	for i := 0; i < o.SQ; i++ {
		if lag := (i + 1) * o.Period; t-lag >= 0 && t-lag < bound {
			pred += m.SMA[i] * residuals[t-lag]
		}
	}
	return pred
}

// Predict returns forecasts on the original scale for the given number of
// steps beyond the last observation.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, pqerrors.NewModelFitError("o modelo precisa ser treinado antes da previsão", nil)
	}
	if steps < 1 {
		return nil, pqerrors.NewModelFitError(fmt.Sprintf("número de previsões inválido: %d", steps), nil)
	}

	y := m.diff.Values
	n := len(y)

	extY := make([]float64, n+steps)
	copy(extY, y)
	extRes := make([]float64, n+steps)
	copy(extRes, m.residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		extY[t] = m.predictOne(extY, extRes, t, n)
		extRes[t] = 0
	}

	forecasts := make([]float64, steps)
	copy(forecasts, extY[n:])
	return m.integrate(forecasts), nil
}

// integrate undoes the differencing applied in Fit. Fit differences
// non-seasonally first and seasonally second, so integration runs in the
// reverse order: seasonal first, non-seasonal last.
func (m *Model) integrate(forecasts []float64) []float64 {
	o := m.Order
	original := m.data.Values
	n := len(original)

	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	// Non-seasonally differenced history, needed to seed the seasonal
	// integration.
	history := original
	for i := 0; i < o.D; i++ {
		if len(history) <= 1 {
			break
		}
		next := make([]float64, len(history)-1)
		for j := 1; j < len(history); j++ {
			next[j-1] = history[j] - history[j-1]
		}
		history = next
	}

	if o.SD > 0 && o.Period > 0 {
		nh := len(history)
		for i := 0; i < o.SD; i++ {
			for j := range result {
				if j < o.Period {
					if idx := nh - o.Period + j; idx >= 0 && idx < nh {
						result[j] += history[idx]
					}
				} else {
					result[j] += result[j-o.Period]
				}
			}
		}
	}

	for i := 0; i < o.D; i++ {
		last := original[n-1]
		for j := range result {
			if j == 0 {
				result[j] += last
			} else {
				result[j] += result[j-1]
			}
		}
	}

	return result
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
