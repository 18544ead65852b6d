package ai

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/mkessler/quickcap/internal/domain/ai"
)

// timeoutProvider enforces the configured completion budget at the transport
// boundary. There is deliberately no retry middleware: a failed analysis is
// surfaced once and the user decides whether to run it again.
type timeoutProvider struct {
	inner  ai.Provider
	budget time.Duration
}

// WithTimeout wraps a provider with a completion timeout.
func WithTimeout(inner ai.Provider, budget time.Duration) ai.Provider {
	return &timeoutProvider{inner: inner, budget: budget}
}

func (p *timeoutProvider) ID() string {
	return p.inner.ID()
}

func (p *timeoutProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	t := timeout.New[*ai.CompletionResponse](timeout.Config{
		DefaultTimeout: p.budget,
	})
	return t.Execute(ctx, p.budget, func(ctx context.Context) (*ai.CompletionResponse, error) {
		return p.inner.Complete(ctx, req)
	})
}

// ListModels and TestConnection carry their own fixed probe budgets.
func (p *timeoutProvider) ListModels(ctx context.Context) ([]string, error) {
	return p.inner.ListModels(ctx)
}

func (p *timeoutProvider) TestConnection(ctx context.Context) error {
	return p.inner.TestConnection(ctx)
}
