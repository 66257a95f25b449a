package risk

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/climashield/climashield/internal/dataset"
	"github.com/climashield/climashield/internal/predict"
)

// Trend labels the direction of a fitted metric line.
type Trend string

const (
	TrendStable     Trend = "stable"
	TrendImproving  Trend = "improving"
	TrendWorsening  Trend = "worsening"
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
)

// Slope magnitudes below these thresholds count as stable.
const (
	aqiTrendThreshold      = 2  // AQI points per year
	rainfallTrendThreshold = 10 // mm per year
)

// HistoricalAnalysis summarizes an area's observed history and, when a
// regression model is available, its fitted trends.
type HistoricalAnalysis struct {
	AvgAQI        float64 `json:"avgAqi"`
	AvgRainfallMM float64 `json:"avgRainfallMm"`
	AQITrend      Trend   `json:"aqiTrend"`
	RainfallTrend Trend   `json:"rainfallTrend"`
	Years         []int   `json:"years"`

	// Slopes are zero when no model is available.
	AQISlope      float64 `json:"aqiSlope"`
	RainfallSlope float64 `json:"rainfallSlope"`
}

// Score is the weighted risk assessment for one area. All values lie within
// the configured bounds. Overall is the weighted mean of the sub-scores
// (higher = better conditions); ClimateRisk is its inversion (higher = riskier).
type Score struct {
	Area                  string  `json:"area"`
	AirQuality            float64 `json:"airQualityScore"`
	ConstructionStability float64 `json:"constructionStabilityScore"`
	WaterManagement       float64 `json:"waterManagementScore"`
	Overall               float64 `json:"overallScore"`
	ClimateRisk           float64 `json:"climateRiskScore"`
}

// AnalyzeHistory computes averages and trend labels from an area's records.
// The model may be nil when the area lacks enough history for a fit; trends
// then read as stable.
func AnalyzeHistory(records []dataset.HistoricalRecord, model *predict.AreaModel) (HistoricalAnalysis, error) {
	aqis := make([]float64, len(records))
	rainfalls := make([]float64, len(records))
	years := make([]int, len(records))
	for i, r := range records {
		aqis[i] = r.AQI
		rainfalls[i] = r.RainfallMM
		years[i] = r.Year
	}

	avgAQI, err := stats.Mean(stats.Float64Data(aqis))
	if err != nil {
		return HistoricalAnalysis{}, err
	}
	avgRainfall, err := stats.Mean(stats.Float64Data(rainfalls))
	if err != nil {
		return HistoricalAnalysis{}, err
	}

	analysis := HistoricalAnalysis{
		AvgAQI:        avgAQI,
		AvgRainfallMM: avgRainfall,
		AQITrend:      TrendStable,
		RainfallTrend: TrendStable,
		Years:         years,
	}

	if model != nil {
		analysis.AQISlope = model.AQI.Slope
		analysis.RainfallSlope = model.Rainfall.Slope

		switch {
		case model.AQI.Slope > aqiTrendThreshold:
			analysis.AQITrend = TrendWorsening
		case model.AQI.Slope < -aqiTrendThreshold:
			analysis.AQITrend = TrendImproving
		}

		switch {
		case model.Rainfall.Slope > rainfallTrendThreshold:
			analysis.RainfallTrend = TrendIncreasing
		case model.Rainfall.Slope < -rainfallTrendThreshold:
			analysis.RainfallTrend = TrendDecreasing
		}
	}

	return analysis, nil
}

// ComputeScore combines historical averages, fitted trends, and soil
// attributes into the three weighted sub-scores and the overall score.
// The computation is deterministic and the result always lies within bounds.
func (c Config) ComputeScore(area string, hist HistoricalAnalysis, soil SoilAnalysis) Score {
	// Internal computations run on the 1-10 scale of the source formulas and
	// are rescaled to the configured bounds at the end.
	aqiScore := clamp(10-(hist.AvgAQI/50)*9, 1, 10)

	rainfallDeviation := math.Abs(hist.AvgRainfallMM-c.OptimalRainfallMM) / c.OptimalRainfallMM
	rainfallScore := clamp(10-rainfallDeviation*9, 1, 10)

	// A worsening AQI trend drags the air quality sub-score down; an
	// improving one lifts it.
	airQuality := clamp(aqiScore-trendShift(hist.AQISlope, aqiTrendThreshold)*c.TrendInfluence, 1, 10)

	constructionStability := clamp(11-soil.WaterloggingRisk, 1, 10)

	// Rainfall swinging in either direction stresses drainage and storage.
	waterBase := (rainfallScore + soil.WaterAbsorption) / 2
	waterManagement := clamp(waterBase-math.Abs(trendShift(hist.RainfallSlope, rainfallTrendThreshold))*c.TrendInfluence, 1, 10)

	w := c.Weights
	totalWeight := w.AirQuality + w.ConstructionStability + w.WaterManagement
	if totalWeight <= 0 {
		w = Weights{AirQuality: 1, ConstructionStability: 1, WaterManagement: 1}
		totalWeight = 3
	}
	overall := (airQuality*w.AirQuality +
		constructionStability*w.ConstructionStability +
		waterManagement*w.WaterManagement) / totalWeight
	climateRisk := clamp(11-overall, 1, 10)

	return Score{
		Area:                  area,
		AirQuality:            c.rescale(airQuality),
		ConstructionStability: c.rescale(constructionStability),
		WaterManagement:       c.rescale(waterManagement),
		Overall:               c.rescale(overall),
		ClimateRisk:           c.rescale(climateRisk),
	}
}

// trendShift normalizes a slope against its stability threshold and caps it
// at one unit in either direction.
func trendShift(slope, threshold float64) float64 {
	return clamp(slope/threshold, -1, 1)
}

// rescale maps an internal 1-10 value into the configured bounds.
func (c Config) rescale(v float64) float64 {
	span := c.Bounds.Max - c.Bounds.Min
	scaled := c.Bounds.Min + (v-1)/9*span
	return round1(clamp(scaled, c.Bounds.Min, c.Bounds.Max))
}

func round1(v float64) float64 {
	r, err := stats.Round(v, 1)
	if err != nil {
		return v
	}
	return r
}
