package openrouter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client implements the llm.Provider interface for OpenRouter. OpenRouter
// speaks the OpenAI chat-completions wire format, so the SDK is shared; the
// differences are the endpoint, the attribution headers, and the model
// catalog.
type Client struct {
	api        *openai.Client
	httpClient *http.Client
	settings   llm.Settings
	logger     zerolog.Logger
}

// New creates an OpenRouter adapter from a settings snapshot.
func New(settings llm.Settings, logger zerolog.Logger) *Client {
	httpClient := &http.Client{
		Timeout: 120 * time.Second,
		Transport: &attributionTransport{
			siteURL:  settings.SiteURL,
			siteName: settings.SiteName,
		},
	}

	cfg := openai.DefaultConfig(settings.APIKey)
	cfg.BaseURL = baseURL(settings)
	cfg.HTTPClient = httpClient

	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		httpClient: httpClient,
		settings:   settings,
		logger:     logger,
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
	return llm.ProviderOpenRouter
}

// StreamCompletion implements llm.Provider.StreamCompletion.
func (c *Client) StreamCompletion(ctx context.Context, conversation []llm.Message, onUpdate llm.UpdateFunc) error {
	return llm.RunStream(ctx, c.Name(), c.settings.Temperature, c.logger, func(ctx context.Context, temperature float64) (int, error) {
		return c.streamOnce(ctx, conversation, temperature, onUpdate)
	})
}

// streamOnce performs a single streaming attempt. Unlike the OpenAI
// adapter, empty-string deltas are forwarded: some routed models use them
// as meaningful heartbeat fragments.
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
		fragments++
		onUpdate(resp.Choices[0].Delta.Content)
	}
}

// ValidateKey implements llm.Provider.ValidateKey.
func (c *Client) ValidateKey(ctx context.Context) llm.KeyValidation {
	endpoint := baseURL(c.settings) + "/models"
	return llm.ProbeEndpoint(ctx, c.httpClient, endpoint, map[string]string{
		"Authorization": "Bearer " + c.settings.APIKey,
	})
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

// AnalyzeImage implements llm.ImageAnalyzer. OpenRouter fetches http(s)
// image URLs itself and accepts inline data URLs, so no uploader is needed.
func (c *Client) AnalyzeImage(ctx context.Context, image string, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.settings.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: image, Detail: openai.ImageURLDetailAuto},
					},
				},
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

var (
	_ llm.Provider      = (*Client)(nil)
	_ llm.ImageAnalyzer = (*Client)(nil)
)
