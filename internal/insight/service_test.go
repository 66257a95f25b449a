package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climashield/climashield/internal/risk"
)

// stubProvider fails a configured number of times before succeeding.
type stubProvider struct {
	calls    int
	failures int
	text     string
	delay    time.Duration
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, _ Request) (string, error) {
	p.calls++

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if p.calls <= p.failures {
		return "", errors.New("transient upstream failure")
	}
	return p.text, nil
}

func sampleRequest() Request {
	cfg := risk.DefaultConfig()
	return Request{
		Area: "Koramangala",
		Score: risk.Score{
			Area:                  "Koramangala",
			AirQuality:            32.5,
			ConstructionStability: 18.0,
			WaterManagement:       44.0,
			Overall:               31.5,
			ClimateRisk:           68.5,
		},
		Soil: risk.SoilAnalysis{
			SoilType:         "Clayey Soil",
			ElevationM:       895,
			WaterAbsorption:  2,
			WaterloggingRisk: 9.3,
		},
		History: risk.HistoricalAnalysis{
			AvgAQI:        104.8,
			AvgRainfallMM: 925,
			AQITrend:      risk.TrendWorsening,
			RainfallTrend: risk.TrendIncreasing,
		},
		Bounds: cfg.Bounds,
	}
}

func TestGenerateUsesProviderText(t *testing.T) {
	provider := &stubProvider{text: "Plant more trees."}
	svc := NewService(provider, time.Second)

	result := svc.Generate(context.Background(), sampleRequest())

	assert.Equal(t, SourceAI, result.Source)
	assert.Equal(t, "Plant more trees.", result.Text)
	assert.Equal(t, "stub", result.Provider)
	assert.Equal(t, 1, provider.calls)
}

func TestGenerateRetriesOnceThenSucceeds(t *testing.T) {
	provider := &stubProvider{failures: 1, text: "Improve drainage."}
	svc := NewService(provider, time.Second)

	result := svc.Generate(context.Background(), sampleRequest())

	assert.Equal(t, SourceAI, result.Source)
	assert.Equal(t, 2, provider.calls)
}

func TestGenerateFallsBackAfterRetry(t *testing.T) {
	provider := &stubProvider{failures: 10}
	svc := NewService(provider, time.Second)

	result := svc.Generate(context.Background(), sampleRequest())

	// One retry only, then the local template.
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Contains(t, result.Text, "Koramangala")
}

func TestGenerateFallsBackOnTimeout(t *testing.T) {
	provider := &stubProvider{delay: 200 * time.Millisecond, text: "too slow"}
	svc := NewService(provider, 10*time.Millisecond)

	start := time.Now()
	result := svc.Generate(context.Background(), sampleRequest())

	assert.Equal(t, SourceFallback, result.Source)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGenerateNilProvider(t *testing.T) {
	svc := NewService(nil, time.Second)

	result := svc.Generate(context.Background(), sampleRequest())

	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.Text)
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := sampleRequest()

	first := BuildPrompt(req)
	second := BuildPrompt(req)
	require.Equal(t, first, second)

	assert.Contains(t, first, "Koramangala")
	assert.Contains(t, first, "Climate Risk Score: 68.5/100")
	assert.Contains(t, first, "Clayey Soil")
	assert.Contains(t, first, "worsening trend")
}

func TestFallbackTextDeterministicAndNamesWeakestFactor(t *testing.T) {
	req := sampleRequest()

	first := FallbackText(req)
	second := FallbackText(req)
	require.Equal(t, first, second)

	// Construction stability is the lowest sub-score in the sample.
	assert.Contains(t, first, "construction stability")
	assert.Contains(t, first, "Koramangala")
	assert.True(t, strings.Contains(first, "elevated") || strings.Contains(first, "moderate"))
}
