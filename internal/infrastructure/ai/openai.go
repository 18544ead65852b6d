package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/mkessler/quickcap/internal/domain/ai"
)

// OpenAIProvider talks to an OpenAI-compatible chat completion API.
type OpenAIProvider struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

func NewOpenAIProvider(baseURL, model, apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		client:  http.DefaultClient,
	}
}

func (p *OpenAIProvider) ID() string {
	return "openai:" + p.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: no openai api key set", ai.ErrNotConfigured)
	}

	payload := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Text},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: openai returned status %d", ai.ErrUpstream, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: decode openai response: %v", ai.ErrUpstream, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai returned no choices", ai.ErrUpstream)
	}

	return &ai.CompletionResponse{
		Text:  chat.Choices[0].Message.Content,
		Model: p.model,
	}, nil
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ListModels returns the GPT model ids, sorted. Filtering to "gpt" is a UX
// choice carried over from the settings screen, not a correctness rule.
func (p *OpenAIProvider) ListModels(ctx context.Context) ([]string, error) {
	models, err := p.fetchModels(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]string, 0, len(models))
	for _, id := range models {
		if strings.Contains(strings.ToLower(id), "gpt") {
			filtered = append(filtered, id)
		}
	}
	sort.Strings(filtered)
	return filtered, nil
}

// TestConnection verifies the key against the models endpoint.
func (p *OpenAIProvider) TestConnection(ctx context.Context) error {
	_, err := p.fetchModels(ctx)
	return err
}

func (p *OpenAIProvider) fetchModels(ctx context.Context) ([]string, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: no openai api key set", ai.ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, listModelsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: openai returned status %d", ai.ErrUpstream, resp.StatusCode)
	}

	var models modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("%w: decode openai models: %v", ai.ErrUpstream, err)
	}

	ids := make([]string, 0, len(models.Data))
	for _, m := range models.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
