package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLineKnownSlope(t *testing.T) {
	// AQI rising 5 points per year: (2020,80),(2021,85),(2022,90).
	line, err := FitLine([]float64{2020, 2021, 2022}, []float64{80, 85, 90})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, line.Slope, 1e-9)
	assert.InDelta(t, 105.0, line.At(2025), 1e-9)
}

func TestFitLineDeterministic(t *testing.T) {
	years := []float64{2019, 2020, 2021, 2022, 2023}
	values := []float64{812, 790, 845, 860, 838}

	first, err := FitLine(years, values)
	require.NoError(t, err)
	second, err := FitLine(years, values)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFitLineInsufficientData(t *testing.T) {
	_, err := FitLine([]float64{2020}, []float64{80})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = FitLine(nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitLineDegenerateSeries(t *testing.T) {
	// Two observations in the same year carry no year variance.
	_, err := FitLine([]float64{2020, 2020}, []float64{80, 90})
	assert.ErrorIs(t, err, ErrDegenerateSeries)
}

func TestFitLineLengthMismatch(t *testing.T) {
	_, err := FitLine([]float64{2020, 2021}, []float64{80})
	assert.Error(t, err)
}
