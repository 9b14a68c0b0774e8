package llm

import (
	"context"
	"testing"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/pkg/logger"
)

// testPolicy returns the default policy with sleeping stubbed out and
// every requested delay recorded.
func testPolicy(slept *[]time.Duration) Policy {
	p := DefaultPolicy()
	p.Sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return p
}

func TestDoReturnsFirstSuccessWithoutSleeping(t *testing.T) {
	var slept []time.Duration
	calls := 0
	got, err := do(context.Background(), testPolicy(&slept), domain.ProviderOpenAI, logger.NewStd(false), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("do() = (%q, %v)", got, err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if len(slept) != 0 {
		t.Fatalf("slept %v, want no sleeps", slept)
	}
}

func TestDoRetriesTransientTwiceThenSucceeds(t *testing.T) {
	var slept []time.Duration
	calls := 0
	got, err := do(context.Background(), testPolicy(&slept), domain.ProviderOpenAI, logger.NewStd(false), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &domain.NetworkError{Provider: "openai", Message: "connection reset"}
		}
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("do() = (%q, %v)", got, err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("slept %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("slept %v, want %v", slept, want)
		}
	}
}

func TestDoStopsAfterMaxAttempts(t *testing.T) {
	var slept []time.Duration
	calls := 0
	_, err := do(context.Background(), testPolicy(&slept), domain.ProviderOpenAI, logger.NewStd(false), func(context.Context) (string, error) {
		calls++
		return "", &domain.TimeoutError{Provider: "openai"}
	})
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if !domain.IsTransient(err) {
		t.Fatalf("final error = %v, want last transient error", err)
	}
	// The final failed attempt must not schedule another sleep.
	if len(slept) != 2 {
		t.Fatalf("slept %v, want exactly 2 waits", slept)
	}
}

func TestDoNeverRetriesFatalErrors(t *testing.T) {
	fatal := []error{
		&domain.AuthError{Provider: "openai", Message: "bad key"},
		&domain.ConfigError{Provider: "openai", Message: "no key"},
		&domain.InvalidRequestError{Provider: "openai", Message: "bad model"},
	}
	for _, errIn := range fatal {
		var slept []time.Duration
		calls := 0
		_, err := do(context.Background(), testPolicy(&slept), domain.ProviderOpenAI, logger.NewStd(false), func(context.Context) (string, error) {
			calls++
			return "", errIn
		})
		if calls != 1 {
			t.Errorf("%T: calls = %d, want 1", errIn, calls)
		}
		if err != errIn {
			t.Errorf("%T: error = %v, want the original", errIn, err)
		}
	}
}

func TestDoStretchesRateLimitBackoff(t *testing.T) {
	var slept []time.Duration
	calls := 0
	got, err := do(context.Background(), testPolicy(&slept), domain.ProviderGemini, logger.NewStd(false), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &domain.RateLimitError{Provider: "gemini"}
		}
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("do() = (%q, %v)", got, err)
	}
	// Base 1s and 2s doubled by the rate-limit factor.
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("slept %v, want %v", slept, want)
		}
	}
}

func TestDoDelayRespectsCap(t *testing.T) {
	p := DefaultPolicy()
	if d := p.delay(5, &domain.NetworkError{}); d != p.MaxDelay {
		t.Fatalf("delay(5) = %v, want cap %v", d, p.MaxDelay)
	}
}

func TestDoAbortsWhenSleepFails(t *testing.T) {
	p := DefaultPolicy()
	p.Sleep = func(ctx context.Context, _ time.Duration) error { return context.Canceled }
	calls := 0
	_, err := do(context.Background(), p, domain.ProviderOpenAI, logger.NewStd(false), func(context.Context) (string, error) {
		calls++
		return "", &domain.NetworkError{Provider: "openai"}
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if !domain.IsTransient(err) {
		t.Fatalf("error = %v, want the last transient error", err)
	}
}

func TestErrKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&domain.RateLimitError{}, "rate_limit"},
		{&domain.TimeoutError{}, "timeout"},
		{&domain.NetworkError{}, "network"},
		{&domain.AuthError{}, "fatal"},
	}
	for _, tc := range cases {
		if got := errKind(tc.err); got != tc.want {
			t.Errorf("errKind(%T) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
