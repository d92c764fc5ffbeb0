package llm

import (
	"sort"
	"strings"
)

// Role represents the role of a message in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message represents a single message in a conversation.
// The ordered sequence of messages forms the conversation; order is turn
// order and is semantically meaningful. Messages are never mutated once sent.
type Message struct {
	Role    Role
	Content string
}

// NewMessage creates a message with the given role and content.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// UserConversation builds a conversation-of-one from a bare prompt.
// This is the legacy single-prompt call shape; the adapter injects the
// configured system prompt, not the caller.
func UserConversation(prompt string) []Message {
	return []Message{NewMessage(RoleUser, prompt)}
}

// HasSystemMessage reports whether the conversation already carries a system
// message. Adapters only inject the configured system prompt when it doesn't.
func HasSystemMessage(conversation []Message) bool {
	for _, msg := range conversation {
		if msg.Role == RoleSystem {
			return true
		}
	}
	return false
}

// ModelPricing holds per-token pricing for a model, in USD.
type ModelPricing struct {
	Prompt     float64
	Completion float64
}

// ModelInfo describes one model offered by a backend. IDs are unique within
// a backend, not globally. Produced by a catalog fetch or a static fallback
// list; consumed by selection UIs and never persisted.
type ModelInfo struct {
	ID            string
	Name          string
	Description   string
	ContextLength int64
	Pricing       *ModelPricing
}

// SortModels sorts models by display name ascending for deterministic,
// user-friendly ordering.
func SortModels(models []ModelInfo) {
	sort.Slice(models, func(i, j int) bool {
		return strings.ToLower(models[i].Name) < strings.ToLower(models[j].Name)
	})
}

// Settings is the per-backend settings snapshot an adapter is constructed
// with. It is owned by the host configuration and read once at call start;
// adapters never mutate it and never hold a live reference into mutable
// configuration across a network boundary.
type Settings struct {
	APIKey       string
	Model        string
	SystemPrompt string
	Temperature  float64

	// BaseURL overrides the backend endpoint (openrouter, lmstudio).
	BaseURL string

	// Host is the server address for local backends (ollama).
	Host string

	// SiteURL and SiteName are optional attribution values sent by backends
	// that identify the calling application (openrouter).
	SiteURL  string
	SiteName string
}

// Config is the configuration surface this core consumes: the active backend
// name plus one settings block per supported backend. It is read-only from
// the core's perspective; persistence and UI editing belong to the host.
type Config struct {
	ActiveProvider string
	Providers      map[string]Settings
}

// SettingsFor returns the settings block for the named backend, filling in
// the backend's hard-coded defaults when no block is present.
func (c *Config) SettingsFor(provider string) Settings {
	if c != nil && c.Providers != nil {
		if s, ok := c.Providers[provider]; ok {
			return s
		}
	}
	return DefaultSettings(provider)
}
