package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Error("expected json_object response format")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"ok":true}`}},
			},
		})
	}))
	defer server.Close()

	g := NewOpenAIGenerator(server.URL, "sk-test", "gpt-4o-mini")
	resp, err := g.Generate(context.Background(), "analyse this")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp != `{"ok":true}` {
		t.Errorf("unexpected response: %s", resp)
	}
}

func TestOpenAIGenerator_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	g := NewOpenAIGenerator(server.URL, "sk-test", "")
	if _, err := g.Generate(context.Background(), "x"); err == nil {
		t.Error("should error when no choices are returned")
	}
}

func TestNew_BackendSelection(t *testing.T) {
	t.Run("Ollama", func(t *testing.T) {
		g, err := New(BackendOllama, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.Backend() != BackendOllama {
			t.Errorf("wrong backend %q", g.Backend())
		}
	})

	t.Run("OpenAI Requires Key", func(t *testing.T) {
		if _, err := New(BackendOpenAI, Options{}); err == nil {
			t.Error("expected error without API key")
		}
		g, err := New(BackendOpenAI, Options{OpenAIAPIKey: "sk-test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.Model() != defaultOpenAIModel {
			t.Errorf("unexpected default model %q", g.Model())
		}
	})

	t.Run("Unknown Backend", func(t *testing.T) {
		if _, err := New("mystery", Options{}); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
