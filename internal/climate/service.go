package climate

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/climashield/climashield/internal/dataset"
	"github.com/climashield/climashield/internal/insight"
	"github.com/climashield/climashield/internal/predict"
	"github.com/climashield/climashield/internal/risk"
)

// Service runs the analysis pipeline: load, predict, score, generate insight.
// Source tables are reloaded from disk on every run and never mutated after
// load, so concurrent requests each work on their own read-only snapshot.
type Service struct {
	historyPath string
	soilPath    string

	forecastFrom int
	forecastTo   int

	riskCfg  risk.Config
	insights *insight.Service
}

// NewService creates a Service over the given source files.
func NewService(historyPath, soilPath string, forecastFrom, forecastTo int, riskCfg risk.Config, insights *insight.Service) *Service {
	return &Service{
		historyPath:  historyPath,
		soilPath:     soilPath,
		forecastFrom: forecastFrom,
		forecastTo:   forecastTo,
		riskCfg:      riskCfg,
		insights:     insights,
	}
}

// AreaInfo is one entry of the area selector.
type AreaInfo struct {
	Area       string  `json:"area"`
	SoilType   string  `json:"soilType"`
	ElevationM float64 `json:"elevationM"`
	YearCount  int     `json:"yearCount"`
}

// Analysis is the full pipeline output for one area.
type Analysis struct {
	Area        string                     `json:"area"`
	History     []dataset.HistoricalRecord `json:"history"`
	Predictions []predict.Prediction       `json:"predictions,omitempty"`
	Model       *predict.AreaModel         `json:"model,omitempty"`
	Historical  risk.HistoricalAnalysis    `json:"historicalAnalysis"`
	Soil        risk.SoilAnalysis          `json:"soilAnalysis"`
	Score       risk.Score                 `json:"riskScore"`
	Insight     insight.Result             `json:"insight"`
	Warnings    []string                   `json:"warnings,omitempty"`
}

// Areas lists all known areas with their soil metadata.
func (s *Service) Areas() ([]AreaInfo, error) {
	tables, err := dataset.Load(s.historyPath, s.soilPath)
	if err != nil {
		return nil, err
	}

	var infos []AreaInfo
	for _, area := range tables.Areas() {
		info := AreaInfo{Area: area}
		if records, err := tables.History(area); err == nil {
			info.YearCount = len(records)
		}
		if profile, err := tables.Soil(area); err == nil {
			info.SoilType = profile.SoilType
			info.ElevationM = profile.ElevationM
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Analyze runs the full pipeline for one area. Returns dataset.ErrNotFound
// when the area has no historical records.
func (s *Service) Analyze(ctx context.Context, area string) (*Analysis, error) {
	tables, err := dataset.Load(s.historyPath, s.soilPath)
	if err != nil {
		return nil, err
	}

	records, err := tables.History(area)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Area:    area,
		History: records,
	}

	// Fit and extrapolate. An area that cannot support a regression is still
	// scored on its history alone; the skipped prediction is surfaced as a
	// warning, never a silent degenerate fit.
	model, err := predict.FitArea(records)
	switch {
	case err == nil:
		analysis.Model = &model
		analysis.Predictions = model.Forecast(s.forecastFrom, s.forecastTo)
	case errors.Is(err, predict.ErrInsufficientData), errors.Is(err, predict.ErrDegenerateSeries):
		log.Printf("WARN: predictions skipped for %q: %v", area, err)
		analysis.Warnings = append(analysis.Warnings,
			fmt.Sprintf("predictions unavailable: %v", err))
	default:
		return nil, fmt.Errorf("fit models for %q: %w", area, err)
	}

	historical, err := risk.AnalyzeHistory(records, analysis.Model)
	if err != nil {
		return nil, fmt.Errorf("analyze history for %q: %w", area, err)
	}
	analysis.Historical = historical

	if profile, soilErr := tables.Soil(area); soilErr == nil {
		analysis.Soil = risk.AnalyzeSoil(profile)
	} else {
		analysis.Soil = risk.UnknownSoil()
		analysis.Warnings = append(analysis.Warnings, "no soil profile on file; using neutral soil assumptions")
	}

	analysis.Score = s.riskCfg.ComputeScore(area, analysis.Historical, analysis.Soil)

	analysis.Insight = s.insights.Generate(ctx, insight.Request{
		Area:    area,
		Score:   analysis.Score,
		Soil:    analysis.Soil,
		History: analysis.Historical,
		Bounds:  s.riskCfg.Bounds,
	})

	return analysis, nil
}

// Predictions extrapolates every area that supports a regression, returning
// warnings for the ones that do not.
func (s *Service) Predictions() ([]predict.Prediction, []string, error) {
	tables, err := dataset.Load(s.historyPath, s.soilPath)
	if err != nil {
		return nil, nil, err
	}

	var (
		predictions []predict.Prediction
		warnings    []string
	)
	for _, area := range tables.Areas() {
		records, err := tables.History(area)
		if err != nil {
			continue
		}

		model, err := predict.FitArea(records)
		if err != nil {
			log.Printf("WARN: predictions skipped for %q: %v", area, err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", area, err))
			continue
		}

		predictions = append(predictions, model.Forecast(s.forecastFrom, s.forecastTo)...)
	}

	return predictions, warnings, nil
}

// ExportPredictions regenerates the predictions flat file for inspection.
func (s *Service) ExportPredictions(path string) error {
	predictions, warnings, err := s.Predictions()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Printf("WARN: export: %s", w)
	}
	return predict.WriteCSV(path, predictions)
}
