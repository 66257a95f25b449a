package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climashield/climashield/internal/dataset"
	"github.com/climashield/climashield/internal/predict"
)

func TestAnalyzeSoilKnownTypes(t *testing.T) {
	analysis := AnalyzeSoil(dataset.SoilProfile{
		Area:       "Koramangala",
		SoilType:   "Clayey Soil",
		ElevationM: 895,
	})

	assert.Equal(t, 2.0, analysis.WaterAbsorption)
	// elevation factor 0.105, clay factor 0.8
	assert.InDelta(t, 9.315, analysis.WaterloggingRisk, 1e-9)
	assert.InDelta(t, 9.05, analysis.LakeBedProbability, 1e-9)
}

func TestAnalyzeSoilUnknownType(t *testing.T) {
	analysis := AnalyzeSoil(dataset.SoilProfile{
		Area:       "X",
		SoilType:   "Volcanic Ash",
		ElevationM: 500,
	})

	assert.Equal(t, 5.0, analysis.WaterAbsorption)
	assert.Equal(t, "Volcanic Ash", analysis.SoilType)
}

func TestAnalyzeSoilHighElevation(t *testing.T) {
	// Above the 1000m reference the elevation factor bottoms out at zero.
	analysis := AnalyzeSoil(dataset.SoilProfile{
		Area:       "X",
		SoilType:   "Sandy Soil",
		ElevationM: 1400,
	})

	assert.InDelta(t, 2.0, analysis.WaterloggingRisk, 1e-9)
	assert.InDelta(t, 3.0, analysis.LakeBedProbability, 1e-9)
}

func TestAnalyzeHistoryTrends(t *testing.T) {
	records := []dataset.HistoricalRecord{
		{Area: "X", Year: 2020, AQI: 80, RainfallMM: 900},
		{Area: "X", Year: 2021, AQI: 85, RainfallMM: 930},
		{Area: "X", Year: 2022, AQI: 90, RainfallMM: 960},
	}
	model := &predict.AreaModel{
		Area:     "X",
		AQI:      predict.Line{Slope: 5},
		Rainfall: predict.Line{Slope: 30},
	}

	analysis, err := AnalyzeHistory(records, model)
	require.NoError(t, err)

	assert.InDelta(t, 85.0, analysis.AvgAQI, 1e-9)
	assert.InDelta(t, 930.0, analysis.AvgRainfallMM, 1e-9)
	assert.Equal(t, TrendWorsening, analysis.AQITrend)
	assert.Equal(t, TrendIncreasing, analysis.RainfallTrend)
}

func TestAnalyzeHistoryWithoutModel(t *testing.T) {
	records := []dataset.HistoricalRecord{
		{Area: "X", Year: 2024, AQI: 70, RainfallMM: 800},
	}

	analysis, err := AnalyzeHistory(records, nil)
	require.NoError(t, err)

	assert.Equal(t, TrendStable, analysis.AQITrend)
	assert.Equal(t, TrendStable, analysis.RainfallTrend)
	assert.Zero(t, analysis.AQISlope)
}

func TestAnalyzeHistorySmallSlopesReadStable(t *testing.T) {
	records := []dataset.HistoricalRecord{
		{Area: "X", Year: 2020, AQI: 80, RainfallMM: 900},
		{Area: "X", Year: 2021, AQI: 81, RainfallMM: 905},
	}
	model := &predict.AreaModel{
		Area:     "X",
		AQI:      predict.Line{Slope: 1},
		Rainfall: predict.Line{Slope: 5},
	}

	analysis, err := AnalyzeHistory(records, model)
	require.NoError(t, err)

	assert.Equal(t, TrendStable, analysis.AQITrend)
	assert.Equal(t, TrendStable, analysis.RainfallTrend)
}

func TestComputeScoreStaysWithinBoundsUnderExtremes(t *testing.T) {
	cfg := DefaultConfig()

	extremes := []HistoricalAnalysis{
		{AvgAQI: 100000, AvgRainfallMM: 0, AQISlope: 500, RainfallSlope: -500},
		{AvgAQI: 0, AvgRainfallMM: 1e9, AQISlope: -500, RainfallSlope: 500},
		{AvgAQI: -50, AvgRainfallMM: -100},
	}
	soils := []SoilAnalysis{
		AnalyzeSoil(dataset.SoilProfile{SoilType: "Black Cotton Soil", ElevationM: -200}),
		AnalyzeSoil(dataset.SoilProfile{SoilType: "Sandy Soil", ElevationM: 9000}),
		UnknownSoil(),
	}

	for _, hist := range extremes {
		for _, soil := range soils {
			score := cfg.ComputeScore("X", hist, soil)
			for _, v := range []float64{
				score.AirQuality, score.ConstructionStability,
				score.WaterManagement, score.Overall, score.ClimateRisk,
			} {
				assert.GreaterOrEqual(t, v, cfg.Bounds.Min)
				assert.LessOrEqual(t, v, cfg.Bounds.Max)
			}
		}
	}
}

func TestComputeScoreEndpoints(t *testing.T) {
	cfg := DefaultConfig()

	// Perfect conditions saturate at the top of the scale.
	best := cfg.ComputeScore("X",
		HistoricalAnalysis{AvgAQI: 0, AvgRainfallMM: cfg.OptimalRainfallMM},
		SoilAnalysis{WaterAbsorption: 10, WaterloggingRisk: 1},
	)
	assert.Equal(t, cfg.Bounds.Max, best.AirQuality)
	assert.Equal(t, cfg.Bounds.Max, best.ConstructionStability)
	assert.Equal(t, cfg.Bounds.Min, best.ClimateRisk)

	// Terrible conditions saturate at the bottom, and risk at the top.
	worst := cfg.ComputeScore("X",
		HistoricalAnalysis{AvgAQI: 1000, AvgRainfallMM: 0},
		SoilAnalysis{WaterAbsorption: 1, WaterloggingRisk: 10},
	)
	assert.Equal(t, cfg.Bounds.Min, worst.AirQuality)
	assert.Equal(t, cfg.Bounds.Min, worst.ConstructionStability)
	assert.Equal(t, cfg.Bounds.Max, worst.ClimateRisk)
}

func TestComputeScoreWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{AirQuality: 1, ConstructionStability: 0, WaterManagement: 0}

	score := cfg.ComputeScore("X",
		HistoricalAnalysis{AvgAQI: 0, AvgRainfallMM: 0},
		SoilAnalysis{WaterAbsorption: 1, WaterloggingRisk: 10},
	)

	// With all weight on air quality the overall tracks it exactly.
	assert.Equal(t, score.AirQuality, score.Overall)
}

func TestComputeScoreZeroWeightsFallBackToEqual(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{}

	score := cfg.ComputeScore("X",
		HistoricalAnalysis{AvgAQI: 50, AvgRainfallMM: 1200},
		UnknownSoil(),
	)
	assert.GreaterOrEqual(t, score.Overall, cfg.Bounds.Min)
	assert.LessOrEqual(t, score.Overall, cfg.Bounds.Max)
}

func TestComputeScoreCustomBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bounds = Bounds{Min: 0, Max: 10}

	score := cfg.ComputeScore("X",
		HistoricalAnalysis{AvgAQI: 0, AvgRainfallMM: cfg.OptimalRainfallMM},
		SoilAnalysis{WaterAbsorption: 10, WaterloggingRisk: 1},
	)
	assert.Equal(t, 10.0, score.AirQuality)
}

func TestComputeScoreDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	hist := HistoricalAnalysis{AvgAQI: 85, AvgRainfallMM: 930, AQISlope: 5, RainfallSlope: 30}
	soil := AnalyzeSoil(dataset.SoilProfile{SoilType: "Clayey Soil", ElevationM: 895})

	assert.Equal(t, cfg.ComputeScore("X", hist, soil), cfg.ComputeScore("X", hist, soil))
}
