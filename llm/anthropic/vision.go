package anthropic

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/pcallahan/inkwell/llm"
)

// AnalyzeImage implements llm.ImageAnalyzer. The image may be an http(s)
// URL or a data URL; the Messages API accepts a URL source directly, while
// data URLs are decomposed into base64 source blocks.
func (c *Client) AnalyzeImage(ctx context.Context, image string, prompt string) (string, error) {
	imageBlock, err := toImageBlock(image)
	if err != nil {
		return "", err
	}

	message, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.settings.Model),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(imageBlock, anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("image analysis failed: %w", err)
	}

	var text strings.Builder
	for _, blockUnion := range message.Content {
		if block, ok := blockUnion.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return text.String(), nil
}

func toImageBlock(image string) (anthropic.ContentBlockParamUnion, error) {
	if strings.HasPrefix(image, "data:") {
		mediaType, data, err := parseDataURL(image)
		if err != nil {
			return anthropic.ContentBlockParamUnion{}, err
		}
		return anthropic.NewImageBlockBase64(mediaType, data), nil
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return anthropic.NewImageBlock(anthropic.URLImageSourceParam{URL: image}), nil
	}
	return anthropic.ContentBlockParamUnion{}, fmt.Errorf("unsupported image reference %q", truncate(image, 64))
}

// parseDataURL splits a data URL into its media type and base64 payload.
func parseDataURL(dataURL string) (mediaType, data string, err error) {
	rest := strings.TrimPrefix(dataURL, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", fmt.Errorf("malformed data url")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", "", fmt.Errorf("data url must be base64-encoded")
	}
	mediaType = strings.TrimSuffix(meta, ";base64")
	if mediaType == "" {
		mediaType = "image/png"
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return "", "", fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return mediaType, payload, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ llm.ImageAnalyzer = (*Client)(nil)
