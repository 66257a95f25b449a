package insight

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// Result sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Result is the generated insight plus where it came from, so the dashboard
// can mark degraded-mode output.
type Result struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Provider string `json:"provider"`
}

// Service wraps a Provider with the timeout, single-retry, and circuit
// breaker policy, falling back to a local templated summary on any failure.
type Service struct {
	provider Provider
	timeout  time.Duration
	circuit  *gobreaker.CircuitBreaker
}

// NewService creates an insight service. A nil provider is allowed and means
// every request is served by the fallback template.
func NewService(provider Provider, timeout time.Duration) *Service {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "insight",
		MaxRequests: 2,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Service{
		provider: provider,
		timeout:  timeout,
		circuit:  cb,
	}
}

// Generate produces insight text for the request. The external call is
// bounded by the configured timeout and retried once on transient failure;
// the fallback summary is returned instead of an error so the dashboard
// never breaks because the generator is down.
func (s *Service) Generate(ctx context.Context, req Request) Result {
	if s.provider == nil {
		return s.fallback(req)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		out, err := s.circuit.Execute(func() (interface{}, error) {
			return s.provider.Generate(callCtx, req)
		})
		cancel()

		if err == nil {
			text, ok := out.(string)
			if !ok {
				lastErr = errors.New("unexpected result type from circuit breaker")
				break
			}
			return Result{Text: text, Source: SourceAI, Provider: s.provider.Name()}
		}

		lastErr = err

		// An open circuit or a dead parent context will not recover within
		// this request; skip the retry.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	log.Printf("insight provider %s failed, serving fallback: %v", s.provider.Name(), lastErr)
	return s.fallback(req)
}

func (s *Service) fallback(req Request) Result {
	return Result{Text: FallbackText(req), Source: SourceFallback, Provider: "local-template"}
}
