// Package ai implements the AI backend variants behind the domain Provider
// interface.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mkessler/quickcap/internal/domain/ai"
)

// Cold-loading a large model can take a while, so the connectivity probe
// gets a fixed budget well above the completion default.
const ollamaProbeTimeout = 60 * time.Second

const listModelsTimeout = 10 * time.Second

// OllamaProvider talks to a local Ollama server.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  http.DefaultClient,
	}
}

func (p *OllamaProvider) ID() string {
	return "ollama:" + p.model
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.model == "" {
		return nil, fmt.Errorf("%w: no ollama model selected", ai.ErrNotConfigured)
	}

	prompt := req.System + "\n\nNote:\n" + req.Text + "\n\nAnswer as JSON:"
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, err
	}

	resp, err := p.post(ctx, "/api/generate", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama returned status %d", ai.ErrUpstream, resp.StatusCode)
	}

	var generated ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("%w: decode ollama response: %v", ai.ErrUpstream, err)
	}

	return &ai.CompletionResponse{
		Text:  strings.TrimSpace(generated.Response),
		Model: p.model,
	}, nil
}

type ollamaTagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// ListModels returns every model the server reports, unfiltered.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listModelsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama returned status %d", ai.ErrUpstream, resp.StatusCode)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("%w: decode ollama tags: %v", ai.ErrUpstream, err)
	}

	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		switch {
		case m.Name != "":
			models = append(models, m.Name)
		case m.Model != "":
			models = append(models, m.Model)
		default:
			models = append(models, "unknown")
		}
	}
	return models, nil
}

// TestConnection issues a minimal generate call against the selected model.
func (p *OllamaProvider) TestConnection(ctx context.Context) error {
	if p.model == "" {
		return fmt.Errorf("%w: no ollama model selected", ai.ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, ollamaProbeTimeout)
	defer cancel()

	body, err := json.Marshal(ollamaGenerateRequest{Model: p.model, Prompt: "Test", Stream: false})
	if err != nil {
		return err
	}
	resp, err := p.post(ctx, "/api/generate", body)
	if err != nil {
		return fmt.Errorf("%w: %v", ai.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", ai.ErrUpstream, resp.StatusCode)
	}
	return nil
}

func (p *OllamaProvider) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return p.client.Do(req)
}
