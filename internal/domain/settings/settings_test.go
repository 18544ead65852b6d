package settings

import (
	"testing"
	"time"
)

func TestValues_Defaults(t *testing.T) {
	v := Values{}

	if v.Provider() != ProviderOllama {
		t.Errorf("Provider = %q, want ollama", v.Provider())
	}
	if v.OllamaURL() != DefaultOllamaURL {
		t.Errorf("OllamaURL = %q", v.OllamaURL())
	}
	if v.OpenAIBaseURL() != DefaultOpenAIBaseURL {
		t.Errorf("OpenAIBaseURL = %q", v.OpenAIBaseURL())
	}
	if v.OpenAIModel() != DefaultOpenAIModel {
		t.Errorf("OpenAIModel = %q", v.OpenAIModel())
	}
	if v.Timeout() != DefaultTimeout {
		t.Errorf("Timeout = %v", v.Timeout())
	}
	if v.DefaultProject() != 0 {
		t.Errorf("DefaultProject = %d, want 0", v.DefaultProject())
	}
	if v.DefaultUser() != 1 {
		t.Errorf("DefaultUser = %d, want 1", v.DefaultUser())
	}
}

func TestValues_Timeout(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"45", 45 * time.Second},
		{"0", DefaultTimeout},
		{"-3", DefaultTimeout},
		{"soon", DefaultTimeout},
	}
	for _, tc := range cases {
		v := Values{KeyTimeout: tc.raw}
		if got := v.Timeout(); got != tc.want {
			t.Errorf("Timeout(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestValues_Redacted(t *testing.T) {
	v := Values{
		KeyProvider:      "openai",
		KeyOpenAIAPIKey:  "sk-secret",
		KeyTrackerAPIKey: "lt-secret",
	}

	redacted := v.Redacted()
	if redacted[KeyOpenAIAPIKey] != "********" || redacted[KeyTrackerAPIKey] != "********" {
		t.Errorf("secrets not masked: %v", redacted)
	}
	if redacted[KeyProvider] != "openai" {
		t.Errorf("non-secret value changed: %v", redacted)
	}
	if v[KeyOpenAIAPIKey] != "sk-secret" {
		t.Error("Redacted mutated the original")
	}
}

func TestValues_RedactedKeepsEmptySecretsEmpty(t *testing.T) {
	v := Values{KeyOpenAIAPIKey: ""}
	if got := v.Redacted()[KeyOpenAIAPIKey]; got != "" {
		t.Errorf("empty secret rendered as %q", got)
	}
}
