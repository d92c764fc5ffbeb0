package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
)

func TestParseHost(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://localhost:11434", "http://localhost:11434"},
		{"https://ollama.internal", "https://ollama.internal"},
		{"gpu-box:11434", "http://gpu-box:11434"},
		{"localhost", "http://localhost"},
	}
	for _, tt := range tests {
		u, err := parseHost(tt.input)
		if err != nil {
			t.Errorf("parseHost(%s): unexpected error %v", tt.input, err)
			continue
		}
		if u.String() != tt.want {
			t.Errorf("parseHost(%s) = %s, want %s", tt.input, u.String(), tt.want)
		}
	}
}

func TestToMessagesInjectsSystemPrompt(t *testing.T) {
	conversation := []llm.Message{
		llm.NewMessage(llm.RoleUser, "hello"),
	}
	messages := toMessages("You are terse.", conversation)
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != "system" || messages[0].Content != "You are terse." {
		t.Errorf("Expected injected system message, got %+v", messages[0])
	}
}

func TestToMessagesSkipsInjectionWithExistingSystem(t *testing.T) {
	conversation := []llm.Message{
		llm.NewMessage(llm.RoleSystem, "You are verbose."),
		llm.NewMessage(llm.RoleUser, "hello"),
	}
	messages := toMessages("You are terse.", conversation)
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "You are verbose." {
		t.Errorf("Expected conversation's system message first, got %q", messages[0].Content)
	}
}

func TestValidateKeyProbesTagsEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	client := New(llm.Settings{Host: server.URL}, zerolog.Nop())
	result := client.ValidateKey(context.Background())
	if !result.Valid {
		t.Errorf("Expected valid result, got error %q", result.Error)
	}
}

func TestValidateKeyUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(llm.Settings{Host: server.URL}, zerolog.Nop())
	result := client.ValidateKey(context.Background())
	if result.Valid || result.Error == "" {
		t.Errorf("Expected network failure, got %+v", result)
	}
}
