package insight

import (
	"context"

	"github.com/climashield/climashield/internal/risk"
)

// Request carries the analysis summary a text generator turns into a
// human-readable recommendation.
type Request struct {
	Area    string
	Score   risk.Score
	Soil    risk.SoilAnalysis
	History risk.HistoricalAnalysis
	Bounds  risk.Bounds
}

// Provider abstracts a text generator capable of producing an insight from a
// score summary. Keeping the surface this narrow lets the timeout and
// fallback policy be tested without a live network dependency.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
