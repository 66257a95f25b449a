package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/climashield/climashield/internal/risk"
)

// AppConfig bundles everything the service reads from the environment.
type AppConfig struct {
	// Source tables.
	HistoryCSV string
	SoilCSV    string

	// Optional predictions export (empty = disabled) and its refresh interval.
	PredictionsCSV string
	ExportInterval time.Duration

	// Inclusive extrapolation range.
	ForecastFrom int
	ForecastTo   int

	// Insight generation.
	AnthropicAPIKey string
	InsightModel    string
	InsightTimeout  time.Duration
	InsightTokens   int64

	// Risk scoring surface: sub-score weights and clamp bounds.
	Risk risk.Config

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		HistoryCSV:      getenvDefault("HISTORY_CSV", "data/aqi_rainfall.csv"),
		SoilCSV:         getenvDefault("SOIL_CSV", "data/soil_elevation.csv"),
		PredictionsCSV:  os.Getenv("PREDICTIONS_CSV"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		InsightModel:    getenvDefault("INSIGHT_MODEL", "claude-haiku-4-5-20251001"),
		InsightTokens:   int64(getenvInt("INSIGHT_MAX_TOKENS", 300)),
		Port:            getenvDefault("PORT", "8080"),
	}

	exportIntervalStr := getenvDefault("EXPORT_INTERVAL", "1h")
	exportInterval, err := time.ParseDuration(exportIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_INTERVAL: %w", err)
	}
	cfg.ExportInterval = exportInterval

	insightTimeoutStr := getenvDefault("INSIGHT_TIMEOUT", "20s")
	insightTimeout, err := time.ParseDuration(insightTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid INSIGHT_TIMEOUT: %w", err)
	}
	cfg.InsightTimeout = insightTimeout

	cfg.ForecastFrom = getenvInt("FORECAST_FROM", 2025)
	cfg.ForecastTo = getenvInt("FORECAST_TO", 2030)
	if cfg.ForecastTo < cfg.ForecastFrom {
		return nil, fmt.Errorf("FORECAST_TO (%d) must not precede FORECAST_FROM (%d)", cfg.ForecastTo, cfg.ForecastFrom)
	}

	cfg.Risk = loadRiskConfig()
	if cfg.Risk.Bounds.Max <= cfg.Risk.Bounds.Min {
		return nil, fmt.Errorf("SCORE_MAX must be greater than SCORE_MIN")
	}

	return cfg, nil
}

func loadRiskConfig() risk.Config {
	rc := risk.DefaultConfig()

	rc.Weights.AirQuality = getenvFloat("RISK_WEIGHT_AIR", rc.Weights.AirQuality)
	rc.Weights.ConstructionStability = getenvFloat("RISK_WEIGHT_CONSTRUCTION", rc.Weights.ConstructionStability)
	rc.Weights.WaterManagement = getenvFloat("RISK_WEIGHT_WATER", rc.Weights.WaterManagement)

	rc.Bounds.Min = getenvFloat("SCORE_MIN", rc.Bounds.Min)
	rc.Bounds.Max = getenvFloat("SCORE_MAX", rc.Bounds.Max)

	rc.OptimalRainfallMM = getenvFloat("OPTIMAL_RAINFALL_MM", rc.OptimalRainfallMM)
	rc.TrendInfluence = getenvFloat("TREND_INFLUENCE", rc.TrendInfluence)

	return rc
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
