package llm

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/infrastructure/metrics"
	"github.com/yoyaktube/yyt/internal/ports"
)

// Policy is the explicit retry policy applied at the call boundary:
// bounded attempts, exponential backoff, and a transient-only predicate.
// Rate-limit errors back off longer than other transient kinds.
type Policy struct {
	// MaxAttempts counts the first call too; 3 means at most 2 retries.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// RateLimitFactor stretches the delay after a rate-limit error.
	RateLimitFactor float64
	// Retryable decides which errors may be retried. Defaults to
	// domain.IsTransient.
	Retryable func(error) bool
	// Sleep is a seam for tests; defaults to a context-aware wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the bounded policy used for every provider call.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		BaseDelay:       time.Second,
		MaxDelay:        10 * time.Second,
		RateLimitFactor: 2,
	}
}

func (p Policy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return domain.IsTransient(err)
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// delay computes the backoff before retry number `attempt` (1-based).
func (p Policy) delay(attempt int, lastErr error) time.Duration {
	d := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if domain.IsRateLimit(lastErr) && p.RateLimitFactor > 1 {
		d = time.Duration(float64(d) * p.RateLimitFactor)
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// do runs fn under the policy. Only errors the predicate accepts are
// retried; everything else propagates on first occurrence. The request
// is never altered between attempts.
func do[T any](ctx context.Context, p Policy, provider domain.ProviderName, log ports.Logger, fn func(context.Context) (T, error)) (T, error) {
	var lastErr error
	var zero T

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !p.retryable(err) || attempt == attempts {
			break
		}

		delay := p.delay(attempt, err)
		metrics.RetryAttemptsTotal.WithLabelValues(string(provider), errKind(err)).Inc()
		if log != nil {
			log.Warn("retrying provider call", map[string]interface{}{
				"provider": provider,
				"attempt":  attempt,
				"delay":    delay.String(),
				"kind":     errKind(err),
			})
		}
		if err := p.sleep(ctx, delay); err != nil {
			return zero, lastErr
		}
	}

	return zero, lastErr
}

func errKind(err error) string {
	var timeoutErr *domain.TimeoutError
	switch {
	case domain.IsRateLimit(err):
		return "rate_limit"
	case errors.As(err, &timeoutErr):
		return "timeout"
	case domain.IsTransient(err):
		return "network"
	default:
		return "fatal"
	}
}
