package lmstudio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
)

func TestListModelsFromLocalServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"qwen2.5-coder-7b-instruct","object":"model"},
			{"id":"llama-3.2-3b-instruct","object":"model"}
		]}`))
	}))
	defer server.Close()

	client := New(llm.Settings{BaseURL: server.URL}, zerolog.Nop())
	models := client.ListModels(context.Background())

	if len(models) != 2 {
		t.Fatalf("Expected 2 models, got %d", len(models))
	}
	if models[0].ID != "llama-3.2-3b-instruct" || models[1].ID != "qwen2.5-coder-7b-instruct" {
		t.Errorf("Unexpected order: %s, %s", models[0].ID, models[1].ID)
	}
}

func TestListModelsFallbackWhenServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(llm.Settings{BaseURL: server.URL}, zerolog.Nop())
	models := client.ListModels(context.Background())

	if len(models) != 1 || models[0].ID != "local-model" {
		t.Fatalf("Expected single fallback entry, got %+v", models)
	}
}

func TestValidateKeyAgainstLocalServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("Expected unauthenticated probe, got %q", auth)
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := New(llm.Settings{BaseURL: server.URL}, zerolog.Nop())
	result := client.ValidateKey(context.Background())
	if !result.Valid {
		t.Errorf("Expected valid result, got error %q", result.Error)
	}
}
