package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// visionMaxTokens bounds the non-streaming vision response.
const visionMaxTokens = 1024

// UploadImage implements llm.ImageUploader by encoding the bytes into
// a data URL the chat endpoint accepts inline. No remote upload happens.
func (c *Client) UploadImage(_ context.Context, data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data is empty")
	}
	mime := mimeTypeForName(name)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// UploadImageFromURL implements llm.ImageUploader. The chat
// endpoint fetches http(s) URLs itself, so the reference is the URL.
func (c *Client) UploadImageFromURL(_ context.Context, srcURL string) (string, error) {
	u, err := url.Parse(srcURL)
	if err != nil {
		return "", fmt.Errorf("invalid image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}
	return srcURL, nil
}

// AnalyzeImage implements llm.ImageAnalyzer using the configured
// model's multimodal input.
func (c *Client) AnalyzeImage(ctx context.Context, image string, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.settings.Model,
		MaxTokens: visionMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    image,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("image analysis failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func mimeTypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
