package ai

import (
	"fmt"

	"github.com/mkessler/quickcap/internal/domain/ai"
	"github.com/mkessler/quickcap/internal/domain/settings"
)

// NewProviderFromSettings builds the configured backend variant and wraps it
// with the completion timeout from the settings.
func NewProviderFromSettings(values settings.Values) (ai.Provider, error) {
	var provider ai.Provider
	switch values.Provider() {
	case settings.ProviderOllama:
		provider = NewOllamaProvider(values.OllamaURL(), values.OllamaModel())
	case settings.ProviderOpenAI:
		provider = NewOpenAIProvider(values.OpenAIBaseURL(), values.OpenAIModel(), values.OpenAIAPIKey())
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", values.Provider())
	}
	return WithTimeout(provider, values.Timeout()), nil
}
