package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/mkessler/quickcap/internal/domain/ai"
)

func TestOpenAIComplete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"title\":\"x\"}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "gpt-4", "sk-test")
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Text: "note", System: "sys"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got.Model != "gpt-4" || got.ResponseFormat.Type != "json_object" {
		t.Errorf("request = %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "note" {
		t.Errorf("messages = %+v", got.Messages)
	}
	if resp.Text != `{"title":"x"}` {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestOpenAIComplete_NoAPIKey(t *testing.T) {
	p := NewOpenAIProvider("https://api.openai.com/v1", "gpt-4", "")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Text: "note"})
	if !errors.Is(err, ai.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestOpenAIComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "gpt-4", "sk-test")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Text: "note"})
	if !errors.Is(err, ai.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestOpenAIListModels_FiltersAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-4o"},{"id":"whisper-1"},{"id":"gpt-4"},{"id":"dall-e-3"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "gpt-4", "sk-test")
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	want := []string{"gpt-4", "gpt-4o"}
	if !reflect.DeepEqual(models, want) {
		t.Errorf("models = %v, want %v", models, want)
	}
}

func TestOpenAITestConnection_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "gpt-4", "sk-bad")
	if err := p.TestConnection(context.Background()); !errors.Is(err, ai.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}
