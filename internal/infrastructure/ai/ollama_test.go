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

func TestOllamaComplete(t *testing.T) {
	var got ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": ` {"title":"x"} `})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{Text: "note", System: "sys"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got.Model != "llama3" || got.Stream || got.Format != "json" {
		t.Errorf("request = %+v", got)
	}
	if got.Prompt != "sys\n\nNote:\nnote\n\nAnswer as JSON:" {
		t.Errorf("prompt = %q", got.Prompt)
	}
	if resp.Text != `{"title":"x"}` {
		t.Errorf("reply not trimmed: %q", resp.Text)
	}
	if resp.Model != "llama3" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestOllamaComplete_NoModelConfigured(t *testing.T) {
	p := NewOllamaProvider("http://localhost:11434", "")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Text: "note"})
	if !errors.Is(err, ai.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestOllamaComplete_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Text: "note"})
	if !errors.Is(err, ai.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3:8b"},{"model":"mistral"},{}]}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	want := []string{"llama3:8b", "mistral", "unknown"}
	if !reflect.DeepEqual(models, want) {
		t.Errorf("models = %v, want %v", models, want)
	}
}

func TestOllamaTestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaGenerateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Prompt != "Test" {
			t.Errorf("probe prompt = %q", req.Prompt)
		}
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	if err := p.TestConnection(context.Background()); err != nil {
		t.Errorf("TestConnection: %v", err)
	}
}
