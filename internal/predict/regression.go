package predict

import (
	"errors"

	"github.com/montanaflynn/stats"
)

var (
	// ErrInsufficientData is returned when an area has fewer than two
	// historical points and cannot support a regression.
	ErrInsufficientData = errors.New("insufficient historical data for regression")

	// ErrDegenerateSeries is returned when all observations share the same
	// year, which would yield a meaningless vertical fit.
	ErrDegenerateSeries = errors.New("historical years carry no variance")
)

// Line is an ordinary-least-squares fit of a metric against year.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the fitted line at the given year.
func (l Line) At(year int) float64 {
	return l.Slope*float64(year) + l.Intercept
}

// FitLine computes the closed-form least-squares line of values against years.
// The fit is deterministic: identical inputs always yield identical coefficients.
func FitLine(years, values []float64) (Line, error) {
	if len(years) != len(values) {
		return Line{}, errors.New("years and values length mismatch")
	}
	if len(years) < 2 {
		return Line{}, ErrInsufficientData
	}

	xs := stats.Float64Data(years)
	ys := stats.Float64Data(values)

	varX, err := stats.PopulationVariance(xs)
	if err != nil {
		return Line{}, err
	}
	if varX == 0 {
		return Line{}, ErrDegenerateSeries
	}

	cov, err := stats.CovariancePopulation(xs, ys)
	if err != nil {
		return Line{}, err
	}

	meanX, err := stats.Mean(xs)
	if err != nil {
		return Line{}, err
	}
	meanY, err := stats.Mean(ys)
	if err != nil {
		return Line{}, err
	}

	slope := cov / varX
	return Line{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}, nil
}
