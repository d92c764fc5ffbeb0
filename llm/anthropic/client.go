package anthropic

import (
	"context"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
)

const (
	modelsEndpoint = "https://api.anthropic.com/v1/models"
	apiVersion     = "2023-06-01"

	// The Messages API requires max_tokens on every request.
	defaultMaxTokens = 4096
)

// Client implements the llm.Provider interface for Anthropic's API.
type Client struct {
	api      anthropic.Client
	settings llm.Settings
	logger   zerolog.Logger
}

// New creates an Anthropic adapter from a settings snapshot.
func New(settings llm.Settings, logger zerolog.Logger) *Client {
	return &Client{
		api:      anthropic.NewClient(option.WithAPIKey(settings.APIKey)),
		settings: settings,
		logger:   logger,
	}
}

// Name implements llm.Provider.Name.
func (c *Client) Name() string {
	return llm.ProviderAnthropic
}

// StreamCompletion implements llm.Provider.StreamCompletion.
func (c *Client) StreamCompletion(ctx context.Context, conversation []llm.Message, onUpdate llm.UpdateFunc) error {
	return llm.RunStream(ctx, c.Name(), c.settings.Temperature, c.logger, func(ctx context.Context, temperature float64) (int, error) {
		return c.streamOnce(ctx, conversation, temperature, onUpdate)
	})
}

// streamOnce performs a single streaming attempt. Empty text deltas are
// filtered: the Messages API uses them only as event padding.
func (c *Client) streamOnce(ctx context.Context, conversation []llm.Message, temperature float64, onUpdate llm.UpdateFunc) (int, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.settings.Model),
		MaxTokens:   defaultMaxTokens,
		Temperature: anthropic.Float(temperature),
		Messages:    toMessageParams(conversation),
	}
	if system := systemText(c.settings.SystemPrompt, conversation); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	stream := c.api.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	fragments := 0
	for stream.Next() {
		event := stream.Current()
		switch evt := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch delta := evt.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if delta.Text != "" {
					fragments++
					onUpdate(delta.Text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return fragments, err
	}
	return fragments, nil
}

// ValidateKey implements llm.Provider.ValidateKey.
func (c *Client) ValidateKey(ctx context.Context) llm.KeyValidation {
	return llm.ProbeEndpoint(ctx, nil, modelsEndpoint, map[string]string{
		"x-api-key":         c.settings.APIKey,
		"anthropic-version": apiVersion,
	})
}

// systemText combines the configured system prompt with any system messages
// in the conversation; the Messages API carries system text as a request
// field, not a message role.
func systemText(configured string, conversation []llm.Message) string {
	text := ""
	if !llm.HasSystemMessage(conversation) {
		text = configured
	}
	for _, msg := range conversation {
		if msg.Role != llm.RoleSystem {
			continue
		}
		if text != "" {
			text += "\n"
		}
		text += msg.Content
	}
	return text
}

// toMessageParams converts the non-system turns to Anthropic message params.
func toMessageParams(conversation []llm.Message) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(conversation))
	for _, msg := range conversation {
		switch msg.Role {
		case llm.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		case llm.RoleUser:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case llm.RoleSystem:
			// Carried in the request's System field.
		}
	}
	return result
}

var _ llm.Provider = (*Client)(nil)
