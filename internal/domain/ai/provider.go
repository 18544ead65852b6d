// Package ai defines the capability contract for AI text-completion backends.
package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when a provider is selected but lacks the
// settings required to issue a request (endpoint, model, or credential).
var ErrNotConfigured = errors.New("ai provider is not configured")

// ErrUpstream is returned for any transport or non-200 failure. A single
// failed attempt is definitive; callers do not retry.
var ErrUpstream = errors.New("ai request failed")

// CompletionRequest represents a single analysis prompt.
type CompletionRequest struct {
	Text   string
	System string
}

// CompletionResponse carries the raw model reply.
type CompletionResponse struct {
	Text  string
	Model string
}

// Provider is the closed set of AI backend variants. Implementations issue
// one blocking HTTP request per call; cancellation and deadlines arrive via
// the context.
type Provider interface {
	ID() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	ListModels(ctx context.Context) ([]string, error)
	TestConnection(ctx context.Context) error
}
