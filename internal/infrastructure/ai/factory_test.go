package ai

import (
	"testing"

	"github.com/mkessler/quickcap/internal/domain/settings"
)

func TestNewProviderFromSettings_DefaultsToOllama(t *testing.T) {
	p, err := NewProviderFromSettings(settings.Values{})
	if err != nil {
		t.Fatalf("NewProviderFromSettings: %v", err)
	}
	if p.ID() != "ollama:" {
		t.Errorf("provider id = %q, want an ollama id", p.ID())
	}
}

func TestNewProviderFromSettings_SelectsOpenAI(t *testing.T) {
	p, err := NewProviderFromSettings(settings.Values{
		settings.KeyProvider:    settings.ProviderOpenAI,
		settings.KeyOpenAIModel: "gpt-4o",
	})
	if err != nil {
		t.Fatalf("NewProviderFromSettings: %v", err)
	}
	if p.ID() != "openai:gpt-4o" {
		t.Errorf("provider id = %q", p.ID())
	}
}

func TestNewProviderFromSettings_UnknownProvider(t *testing.T) {
	_, err := NewProviderFromSettings(settings.Values{settings.KeyProvider: "bard"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}
