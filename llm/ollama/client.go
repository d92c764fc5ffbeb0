package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
)

const defaultHost = "http://localhost:11434"

// Client implements the llm.Provider interface for a local Ollama server.
// Ollama requires no API key; reachability of the host is the only
// credential.
type Client struct {
	api      *api.Client
	settings llm.Settings
	logger   zerolog.Logger
}

// New creates an Ollama adapter from a settings snapshot.
func New(settings llm.Settings, logger zerolog.Logger) *Client {
	base, err := parseHost(hostOf(settings))
	if err != nil {
		// Fall back to the default host; a bad URL will surface as a
		// network failure on the first call.
		base, _ = url.Parse(defaultHost)
	}
	return &Client{
		api:      api.NewClient(base, &http.Client{Timeout: 300 * time.Second}),
		settings: settings,
		logger:   logger,
	}
}

func hostOf(settings llm.Settings) string {
	if settings.Host != "" {
		return settings.Host
	}
	return defaultHost
}

// parseHost parses a host string into a URL, assuming http when no scheme
// is given.
func parseHost(host string) (*url.URL, error) {
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return url.Parse(host)
}

// Name implements llm.Provider.Name.
func (c *Client) Name() string {
	return llm.ProviderOllama
}

// StreamCompletion implements llm.Provider.StreamCompletion.
func (c *Client) StreamCompletion(ctx context.Context, conversation []llm.Message, onUpdate llm.UpdateFunc) error {
	return llm.RunStream(ctx, c.Name(), c.settings.Temperature, c.logger, func(ctx context.Context, temperature float64) (int, error) {
		return c.streamOnce(ctx, conversation, temperature, onUpdate)
	})
}

// streamOnce performs a single streaming attempt. Ollama emits an empty
// final chunk carrying timing metadata; empty content is not forwarded.
func (c *Client) streamOnce(ctx context.Context, conversation []llm.Message, temperature float64, onUpdate llm.UpdateFunc) (int, error) {
	stream := true
	req := &api.ChatRequest{
		Model:    c.settings.Model,
		Messages: toMessages(c.settings.SystemPrompt, conversation),
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": temperature,
		},
	}

	fragments := 0
	err := c.api.Chat(ctx, req, func(resp api.ChatResponse) error {
		if resp.Message.Content != "" {
			fragments++
			onUpdate(resp.Message.Content)
		}
		return nil
	})
	return fragments, err
}

// ValidateKey implements llm.Provider.ValidateKey. There is no key; the
// probe checks that the configured host serves the model-listing endpoint.
func (c *Client) ValidateKey(ctx context.Context) llm.KeyValidation {
	base, err := parseHost(hostOf(c.settings))
	if err != nil {
		return llm.NetworkFailure(err)
	}
	endpoint := strings.TrimSuffix(base.String(), "/") + "/api/tags"
	return llm.ProbeEndpoint(ctx, nil, endpoint, nil)
}

// toMessages converts the conversation to Ollama chat messages, prepending
// the configured system prompt when the conversation doesn't carry one.
func toMessages(systemPrompt string, conversation []llm.Message) []api.Message {
	result := make([]api.Message, 0, len(conversation)+1)
	if systemPrompt != "" && !llm.HasSystemMessage(conversation) {
		result = append(result, api.Message{Role: "system", Content: systemPrompt})
	}
	for _, msg := range conversation {
		result = append(result, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

var _ llm.Provider = (*Client)(nil)
