package forecast

import (
	"math"
	"time"
)

// Point is one predicted future month.
type Point struct {
	Date     time.Time
	Quantity float64
}

// Rounded returns the prediction rounded to the nearest integer, which is
// what gets written to the workbook.
func (p Point) Rounded() int64 {
	return int64(math.Round(p.Quantity))
}

// MonthName returns the English month name, for the operator console lines.
func (p Point) MonthName() string {
	return p.Date.Month().String()
}

// Horizon returns how many months must be forecast to reach finalMonth from
// the last observed date. Zero or negative means the data already covers the
// target and the run is a no-op. Only the month of year is considered; the
// caller is responsible for checking the year against the configured target.
func Horizon(last time.Time, finalMonth int) int {
	return finalMonth - int(last.Month())
}

// PointsFrom pairs each forecast value with the first day of the month
// immediately following the last observed date.
func PointsFrom(last time.Time, values []float64) []Point {
	base := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Date: base.AddDate(0, i+1, 0), Quantity: v}
	}
	return points
}
