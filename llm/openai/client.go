package openai

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements the llm.Provider interface for OpenAI's API.
type Client struct {
	api      *openai.Client
	settings llm.Settings
	logger   zerolog.Logger
}

// New creates an OpenAI adapter from a settings snapshot. The snapshot is
// taken by the caller at call start; the adapter never reads live
// configuration.
func New(settings llm.Settings, logger zerolog.Logger) *Client {
	cfg := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		cfg.BaseURL = settings.BaseURL
	}
	return &Client{
		api:      openai.NewClientWithConfig(cfg),
		settings: settings,
		logger:   logger,
	}
}

// Name implements llm.Provider.Name.
func (c *Client) Name() string {
	return llm.ProviderOpenAI
}

// StreamCompletion implements llm.Provider.StreamCompletion.
func (c *Client) StreamCompletion(ctx context.Context, conversation []llm.Message, onUpdate llm.UpdateFunc) error {
	return llm.RunStream(ctx, c.Name(), c.settings.Temperature, c.logger, func(ctx context.Context, temperature float64) (int, error) {
		return c.streamOnce(ctx, conversation, temperature, onUpdate)
	})
}

// streamOnce performs a single streaming attempt at the given temperature.
// OpenAI filters empty deltas: blank chunks are keep-alive noise on this
// backend and are not forwarded to the callback.
func (c *Client) streamOnce(ctx context.Context, conversation []llm.Message, temperature float64, onUpdate llm.UpdateFunc) (int, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.settings.Model,
		Messages:    ToChatMessages(c.settings.SystemPrompt, conversation),
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

// ValidateKey implements llm.Provider.ValidateKey.
func (c *Client) ValidateKey(ctx context.Context) llm.KeyValidation {
	base := c.settings.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	endpoint := strings.TrimSuffix(base, "/") + "/models"
	return llm.ProbeEndpoint(ctx, nil, endpoint, map[string]string{
		"Authorization": "Bearer " + c.settings.APIKey,
	})
}

// ToChatMessages converts a conversation to OpenAI chat message format,
// prepending the configured system prompt when the conversation doesn't
// already carry one.
func ToChatMessages(systemPrompt string, conversation []llm.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(conversation)+1)
	if systemPrompt != "" && !llm.HasSystemMessage(conversation) {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, msg := range conversation {
		result = append(result, openai.ChatCompletionMessage{
			Role:    ToChatRole(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

// ToChatRole converts an llm.Role to the OpenAI wire role.
func ToChatRole(role llm.Role) string {
	switch role {
	case llm.RoleSystem:
		return openai.ChatMessageRoleSystem
	case llm.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	case llm.RoleUser:
		return openai.ChatMessageRoleUser
	default:
		return openai.ChatMessageRoleUser
	}
}

// Ensure Client implements the provider contract and both vision capabilities.
var (
	_ llm.Provider      = (*Client)(nil)
	_ llm.ImageUploader = (*Client)(nil)
	_ llm.ImageAnalyzer = (*Client)(nil)
)
