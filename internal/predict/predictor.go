package predict

import (
	"github.com/montanaflynn/stats"

	"github.com/climashield/climashield/internal/dataset"
)

// Prediction is an extrapolated point estimate for one area and future year.
type Prediction struct {
	Area       string  `json:"area"`
	Year       int     `json:"year"`
	AQI        float64 `json:"predictedAqi"`
	RainfallMM float64 `json:"predictedRainfallMm"`
}

// AreaModel holds the fitted per-metric regression lines for one area.
type AreaModel struct {
	Area     string `json:"area"`
	AQI      Line   `json:"aqi"`
	Rainfall Line   `json:"rainfall"`
}

// FitArea fits one regression line per metric over an area's history.
// Records must all belong to the same area.
func FitArea(records []dataset.HistoricalRecord) (AreaModel, error) {
	if len(records) < 2 {
		return AreaModel{}, ErrInsufficientData
	}

	years := make([]float64, len(records))
	aqis := make([]float64, len(records))
	rainfalls := make([]float64, len(records))
	for i, r := range records {
		years[i] = float64(r.Year)
		aqis[i] = r.AQI
		rainfalls[i] = r.RainfallMM
	}

	aqiLine, err := FitLine(years, aqis)
	if err != nil {
		return AreaModel{}, err
	}
	rainLine, err := FitLine(years, rainfalls)
	if err != nil {
		return AreaModel{}, err
	}

	return AreaModel{
		Area:     records[0].Area,
		AQI:      aqiLine,
		Rainfall: rainLine,
	}, nil
}

// Forecast evaluates both metric lines at each year in the inclusive range.
// AQI and rainfall are physically non-negative, so extrapolations below zero
// are clamped.
func (m AreaModel) Forecast(fromYear, toYear int) []Prediction {
	if toYear < fromYear {
		return nil
	}

	out := make([]Prediction, 0, toYear-fromYear+1)
	for year := fromYear; year <= toYear; year++ {
		out = append(out, Prediction{
			Area:       m.Area,
			Year:       year,
			AQI:        round1(clampZero(m.AQI.At(year))),
			RainfallMM: round1(clampZero(m.Rainfall.At(year))),
		})
	}
	return out
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func round1(v float64) float64 {
	r, err := stats.Round(v, 1)
	if err != nil {
		return v
	}
	return r
}
