package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaAdapter_Generate(t *testing.T) {
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-1",
			"model": "mistral",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{
					"role":    "assistant",
					"content": "SELECT SUM(total_sales) FROM total_sales_metrics;",
				}},
			},
		})
	}))
	defer srv.Close()

	a := NewOllamaAdapter(srv.URL)
	resp, err := a.Generate(context.Background(), "mistral", "translate to SQL", "What is my total sales?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if resp.Content != "SELECT SUM(total_sales) FROM total_sales_metrics;" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Adapter != "ollama" || resp.Model != "mistral" {
		t.Errorf("Adapter/Model = %q/%q", resp.Adapter, resp.Model)
	}

	if gotReq.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("Messages = %+v, want system then user", gotReq.Messages)
	}
}

func TestOllamaAdapter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	a := NewOllamaAdapter(srv.URL)
	_, err := a.Generate(context.Background(), "mistral", "sys", "user")
	if err == nil {
		t.Fatal("Generate succeeded on a 503")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if provErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", provErr.Status)
	}
	if !IsUnavailable(err) {
		t.Error("IsUnavailable = false for a 503")
	}
}

func TestOllamaAdapter_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	a := NewOllamaAdapter(srv.URL)
	_, err := a.Generate(context.Background(), "mistral", "sys", "user")
	if err == nil {
		t.Fatal("Generate succeeded against a closed server")
	}
	if !IsUnavailable(err) {
		t.Errorf("IsUnavailable = false for %v", err)
	}
}

func TestOllamaAdapter_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"message": "model 'absent' not found",
				"type":    "api_error",
			},
		})
	}))
	defer srv.Close()

	a := NewOllamaAdapter(srv.URL)
	_, err := a.Generate(context.Background(), "absent", "sys", "user")
	if err == nil {
		t.Fatal("Generate succeeded on an API error")
	}
	if IsUnavailable(err) {
		t.Errorf("IsUnavailable = true for %v, want model-level failure", err)
	}
}
