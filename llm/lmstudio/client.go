package lmstudio

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "http://localhost:1234/v1"

// placeholderKey satisfies the SDK; LM Studio's local server ignores
// authentication.
const placeholderKey = "lm-studio"

// Client implements the llm.Provider interface for a local LM Studio
// server, which exposes an OpenAI-compatible endpoint.
type Client struct {
	api      *openai.Client
	settings llm.Settings
	logger   zerolog.Logger
}

// New creates an LM Studio adapter from a settings snapshot.
func New(settings llm.Settings, logger zerolog.Logger) *Client {
	key := settings.APIKey
	if key == "" {
		key = placeholderKey
	}
	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = baseURL(settings)
	return &Client{
		api:      openai.NewClientWithConfig(cfg),
		settings: settings,
		logger:   logger,
	}
}

func baseURL(settings llm.Settings) string {
	if settings.BaseURL != "" {
		return strings.TrimSuffix(settings.BaseURL, "/")
	}
	return defaultBaseURL
}

// Name implements llm.Provider.Name.
func (c *Client) Name() string {
	return llm.ProviderLMStudio
}

// StreamCompletion implements llm.Provider.StreamCompletion.
func (c *Client) StreamCompletion(ctx context.Context, conversation []llm.Message, onUpdate llm.UpdateFunc) error {
	return llm.RunStream(ctx, c.Name(), c.settings.Temperature, c.logger, func(ctx context.Context, temperature float64) (int, error) {
		return c.streamOnce(ctx, conversation, temperature, onUpdate)
	})
}

// streamOnce performs a single streaming attempt. LM Studio pads streams
// with empty keep-alive deltas while the model loads; those are filtered.
func (c *Client) streamOnce(ctx context.Context, conversation []llm.Message, temperature float64, onUpdate llm.UpdateFunc) (int, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.settings.Model,
		Messages:    toChatMessages(c.settings.SystemPrompt, conversation),
		Temperature: float32(temperature),
		Stream:      true,
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	fragments := 0
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return fragments, nil
		}
		if err != nil {
			return fragments, err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		fragments++
		onUpdate(delta)
	}
}

// ValidateKey implements llm.Provider.ValidateKey. The probe only checks
// that the local server is up and serving its models endpoint.
func (c *Client) ValidateKey(ctx context.Context) llm.KeyValidation {
	endpoint := baseURL(c.settings) + "/models"
	return llm.ProbeEndpoint(ctx, nil, endpoint, nil)
}

func toChatMessages(systemPrompt string, conversation []llm.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(conversation)+1)
	if systemPrompt != "" && !llm.HasSystemMessage(conversation) {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, msg := range conversation {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

var _ llm.Provider = (*Client)(nil)
