package llm

import (
	"context"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/infrastructure/metrics"
	"github.com/yoyaktube/yyt/internal/ports"
)

// retryingProvider applies the retry policy uniformly to every adapter
// call and records call latency. By the time an error leaves this type
// it is already a member of the shared taxonomy; the adapters normalize
// at the wire.
type retryingProvider struct {
	inner  ports.Provider
	policy Policy
	logger ports.Logger
}

func newRetryingProvider(inner ports.Provider, policy Policy, log ports.Logger) ports.Provider {
	return &retryingProvider{inner: inner, policy: policy, logger: log}
}

func (r *retryingProvider) Name() domain.ProviderName {
	return r.inner.Name()
}

func (r *retryingProvider) ListModels(ctx context.Context) ([]string, error) {
	timer := startTimer(r.inner.Name(), "list_models")
	defer timer()
	return do(ctx, r.policy, r.inner.Name(), r.logger, func(ctx context.Context) ([]string, error) {
		return r.inner.ListModels(ctx)
	})
}

func (r *retryingProvider) Generate(ctx context.Context, req domain.Request) (domain.Response, error) {
	timer := startTimer(r.inner.Name(), "generate")
	defer timer()
	resp, err := do(ctx, r.policy, r.inner.Name(), r.logger, func(ctx context.Context) (domain.Response, error) {
		return r.inner.Generate(ctx, req)
	})
	if err == nil {
		recordUsage(r.inner.Name(), resp)
	}
	return resp, err
}

func (r *retryingProvider) Chat(ctx context.Context, history []domain.ChatMessage, message string, req domain.Request) (domain.Response, error) {
	timer := startTimer(r.inner.Name(), "chat")
	defer timer()
	resp, err := do(ctx, r.policy, r.inner.Name(), r.logger, func(ctx context.Context) (domain.Response, error) {
		return r.inner.Chat(ctx, history, message, req)
	})
	if err == nil {
		recordUsage(r.inner.Name(), resp)
	}
	return resp, err
}

func startTimer(provider domain.ProviderName, operation string) func() {
	timer := metrics.NewCallTimer(string(provider), operation)
	return timer.Observe
}

func recordUsage(provider domain.ProviderName, resp domain.Response) {
	if resp.Usage.PromptTokens > 0 {
		metrics.TokenUsageTotal.WithLabelValues(string(provider), resp.Model, "input").Add(float64(resp.Usage.PromptTokens))
	}
	if resp.Usage.CompletionTokens > 0 {
		metrics.TokenUsageTotal.WithLabelValues(string(provider), resp.Model, "output").Add(float64(resp.Usage.CompletionTokens))
	}
}
