package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkessler/quickcap/internal/domain/ai"
	"github.com/mkessler/quickcap/internal/domain/capture"
	"github.com/mkessler/quickcap/internal/domain/settings"
)

// ProviderFactory builds the AI backend variant selected by the settings.
type ProviderFactory func(values settings.Values) (ai.Provider, error)

// AnalyzeService turns a free-form note into a task preview: one blocking
// provider call, one parse, one classification fallback. No retries; a
// failed attempt is surfaced and the caller may simply analyze again.
type AnalyzeService struct {
	settings   settings.Store
	factory    ProviderFactory
	categories *CategoryService
	logger     *slog.Logger
	now        func() time.Time
}

func NewAnalyzeService(store settings.Store, factory ProviderFactory, categories *CategoryService, logger *slog.Logger) *AnalyzeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeService{
		settings:   store,
		factory:    factory,
		categories: categories,
		logger:     logger,
		now:        time.Now,
	}
}

// Analyze sends the note to the configured provider and parses the reply
// into a draft. The raw reply is returned alongside so callers can commit
// the exact analyzed structure later.
func (s *AnalyzeService) Analyze(ctx context.Context, text string) (*capture.TaskDraft, string, error) {
	if text == "" {
		return nil, "", fmt.Errorf("%w: note text is empty", capture.ErrInvalidTask)
	}

	values, err := s.settings.All()
	if err != nil {
		return nil, "", fmt.Errorf("load settings: %w", err)
	}

	provider, err := s.factory(values)
	if err != nil {
		return nil, "", err
	}

	resp, err := provider.Complete(ctx, ai.CompletionRequest{
		Text:   text,
		System: renderSystemPrompt(values.SystemPrompt(), s.now()),
	})
	if err != nil {
		s.logger.Error("ai analysis failed", "provider", provider.ID(), "error", err)
		return nil, "", err
	}

	draft, err := capture.ParseResponse(resp.Text, s.now())
	if err != nil {
		s.logger.Error("ai reply not parseable", "provider", provider.ID(), "error", err)
		return nil, resp.Text, err
	}

	if draft.Category == "" {
		draft.Category = s.categories.Infer(text)
		s.logger.Debug("category inferred from note", "category", draft.Category)
	}

	return draft, resp.Text, nil
}

// Preview resolves display metadata for a draft. Round-tripping a draft
// through Preview and Preview.Draft loses no field.
func (s *AnalyzeService) Preview(draft *capture.TaskDraft) *capture.Preview {
	cat := s.categories.Resolve(draft.Category)
	return &capture.Preview{
		Title:         draft.Title,
		Description:   draft.Description,
		Category:      draft.Category,
		CategoryName:  cat.Name,
		CategoryIcon:  cat.Icon,
		CategoryColor: cat.Color,
		Priority:      draft.Priority,
		PriorityLabel: capture.PriorityLabel(draft.Priority),
		Deadline:      draft.Deadline,
		Subtasks:      draft.Subtasks,
		Tags:          draft.Tags,
	}
}

// ListModels queries the configured provider for its available models.
func (s *AnalyzeService) ListModels(ctx context.Context) ([]string, error) {
	values, err := s.settings.All()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	provider, err := s.factory(values)
	if err != nil {
		return nil, err
	}
	return provider.ListModels(ctx)
}

// TestProvider runs the connectivity probe for the configured provider.
func (s *AnalyzeService) TestProvider(ctx context.Context) error {
	values, err := s.settings.All()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	provider, err := s.factory(values)
	if err != nil {
		return err
	}
	return provider.TestConnection(ctx)
}
