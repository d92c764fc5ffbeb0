package anthropic

import (
	"testing"

	"github.com/pcallahan/inkwell/llm"
)

func TestSystemTextUsesConfiguredPrompt(t *testing.T) {
	conversation := []llm.Message{
		llm.NewMessage(llm.RoleUser, "hello"),
	}
	if got := systemText("You are terse.", conversation); got != "You are terse." {
		t.Errorf("Expected configured prompt, got %q", got)
	}
}

func TestSystemTextPrefersConversationMessages(t *testing.T) {
	conversation := []llm.Message{
		llm.NewMessage(llm.RoleSystem, "You are verbose."),
		llm.NewMessage(llm.RoleUser, "hello"),
	}
	if got := systemText("You are terse.", conversation); got != "You are verbose." {
		t.Errorf("Expected conversation system message to win, got %q", got)
	}
}

func TestSystemTextJoinsMultipleSystemMessages(t *testing.T) {
	conversation := []llm.Message{
		llm.NewMessage(llm.RoleSystem, "Rule one."),
		llm.NewMessage(llm.RoleUser, "hello"),
		llm.NewMessage(llm.RoleSystem, "Rule two."),
	}
	if got := systemText("", conversation); got != "Rule one.\nRule two." {
		t.Errorf("Expected joined system text, got %q", got)
	}
}

func TestToMessageParamsSkipsSystemRole(t *testing.T) {
	conversation := []llm.Message{
		llm.NewMessage(llm.RoleSystem, "be brief"),
		llm.NewMessage(llm.RoleUser, "hello"),
		llm.NewMessage(llm.RoleAssistant, "hi"),
	}
	params := toMessageParams(conversation)
	if len(params) != 2 {
		t.Fatalf("Expected 2 params, got %d", len(params))
	}
}

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		mediaType string
		wantErr   bool
	}{
		{"jpeg payload", "data:image/jpeg;base64,aGVsbG8=", "image/jpeg", false},
		{"default media type", "data:;base64,aGVsbG8=", "image/png", false},
		{"not base64 encoded", "data:image/png,rawbytes", "", true},
		{"missing comma", "data:image/png;base64", "", true},
		{"invalid payload", "data:image/png;base64,!!!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mediaType, _, err := parseDataURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mediaType != tt.mediaType {
				t.Errorf("Expected media type %s, got %s", tt.mediaType, mediaType)
			}
		})
	}
}

func TestToImageBlockRejectsBareStrings(t *testing.T) {
	if _, err := toImageBlock("not-a-url"); err == nil {
		t.Error("Expected error for unsupported image reference")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 64); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	long := truncate("abcdefghij", 4)
	if long != "abcd..." {
		t.Errorf("Expected truncated string, got %q", long)
	}
}
