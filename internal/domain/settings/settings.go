// Package settings defines the provider configuration contract: a flat
// key-value mapping owned by the settings store.
package settings

import (
	"strconv"
	"time"
)

// Provider selector values.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Known settings keys.
const (
	KeyProvider      = "provider"
	KeyOllamaURL     = "ollama_url"
	KeyOllamaModel   = "ollama_model"
	KeyOpenAIAPIKey  = "openai_api_key"
	KeyOpenAIBaseURL = "openai_base_url"
	KeyOpenAIModel   = "openai_model"
	KeyTimeout       = "timeout"
	KeySystemPrompt  = "system_prompt"

	KeyTrackerURL     = "tracker_url"
	KeyTrackerAPIKey  = "tracker_api_key"
	KeyDefaultProject = "default_project"
	KeyDefaultUser    = "default_user"
)

// Built-in defaults applied when a key is unset.
const (
	DefaultOllamaURL     = "http://localhost:11434"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4"
	DefaultTimeout       = 30 * time.Second
)

// Values is a snapshot of all settings.
type Values map[string]string

// Store persists settings. SetAll is all-or-nothing.
type Store interface {
	Get(key string) (string, error)
	All() (Values, error)
	Set(key, value string) error
	SetAll(values map[string]string) error
	EnsureInstalled() error
}

func (v Values) get(key, fallback string) string {
	if s, ok := v[key]; ok && s != "" {
		return s
	}
	return fallback
}

// Provider returns the configured backend variant, defaulting to ollama.
func (v Values) Provider() string {
	return v.get(KeyProvider, ProviderOllama)
}

func (v Values) OllamaURL() string {
	return v.get(KeyOllamaURL, DefaultOllamaURL)
}

func (v Values) OllamaModel() string {
	return v.get(KeyOllamaModel, "")
}

func (v Values) OpenAIAPIKey() string {
	return v.get(KeyOpenAIAPIKey, "")
}

func (v Values) OpenAIBaseURL() string {
	return v.get(KeyOpenAIBaseURL, DefaultOpenAIBaseURL)
}

func (v Values) OpenAIModel() string {
	return v.get(KeyOpenAIModel, DefaultOpenAIModel)
}

// Timeout returns the completion timeout. Malformed values fall back to the
// default rather than failing.
func (v Values) Timeout() time.Duration {
	secs, err := strconv.Atoi(v.get(KeyTimeout, ""))
	if err != nil || secs <= 0 {
		return DefaultTimeout
	}
	return time.Duration(secs) * time.Second
}

func (v Values) SystemPrompt() string {
	return v.get(KeySystemPrompt, "")
}

func (v Values) TrackerURL() string {
	return v.get(KeyTrackerURL, "")
}

func (v Values) TrackerAPIKey() string {
	return v.get(KeyTrackerAPIKey, "")
}

// DefaultProject returns the fallback target project id, 0 when unset.
func (v Values) DefaultProject() int {
	id, err := strconv.Atoi(v.get(KeyDefaultProject, ""))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// DefaultUser returns the acting user id for created tickets, 1 when unset.
func (v Values) DefaultUser() int {
	id, err := strconv.Atoi(v.get(KeyDefaultUser, ""))
	if err != nil || id <= 0 {
		return 1
	}
	return id
}

// Redacted returns a copy safe for logs and API responses: credentials are
// masked, never echoed.
func (v Values) Redacted() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if (k == KeyOpenAIAPIKey || k == KeyTrackerAPIKey) && val != "" {
			val = "********"
		}
		out[k] = val
	}
	return out
}
