package openai

import (
	"context"
	"strings"

	"github.com/pcallahan/inkwell/llm"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
)

// chatModelPrefixes selects chat-capable entries from the models endpoint,
// which also lists embedding, audio, and moderation models.
var chatModelPrefixes = []string{"gpt-", "o1", "o3", "o4", "chatgpt-"}

// ListModels implements llm.Provider.ListModels. Fetch failures are
// absorbed: the caller always gets a usable, sorted list.
func (c *Client) ListModels(ctx context.Context) []llm.ModelInfo {
	models, err := c.fetchModels(ctx)
	if err != nil || len(models) == 0 {
		c.logger.Warn().Err(err).Msg("OpenAI model fetch failed, using fallback list")
		models = FallbackModels()
	}
	llm.SortModels(models)
	return models
}

func (c *Client) fetchModels(ctx context.Context) ([]llm.ModelInfo, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	chatModels := lo.Filter(list.Models, func(m openai.Model, _ int) bool {
		return isChatModel(m.ID)
	})
	return lo.Map(chatModels, func(m openai.Model, _ int) llm.ModelInfo {
		return llm.ModelInfo{
			ID:   m.ID,
			Name: m.ID,
		}
	}), nil
}

func isChatModel(id string) bool {
	for _, prefix := range chatModelPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// FallbackModels returns the static model entries substituted when the live
// catalog fetch fails. Availability over accuracy: pickers must never be
// empty.
func FallbackModels() []llm.ModelInfo {
	return []llm.ModelInfo{
		{
			ID:            "gpt-4o",
			Name:          "GPT-4o",
			Description:   "Flagship multimodal model",
			ContextLength: 128000,
			Pricing:       &llm.ModelPricing{Prompt: 0.0000025, Completion: 0.00001},
		},
		{
			ID:            "gpt-4o-mini",
			Name:          "GPT-4o mini",
			Description:   "Fast, inexpensive small model",
			ContextLength: 128000,
			Pricing:       &llm.ModelPricing{Prompt: 0.00000015, Completion: 0.0000006},
		},
		{
			ID:            "gpt-4-turbo",
			Name:          "GPT-4 Turbo",
			ContextLength: 128000,
			Pricing:       &llm.ModelPricing{Prompt: 0.00001, Completion: 0.00003},
		},
		{
			ID:            "gpt-3.5-turbo",
			Name:          "GPT-3.5 Turbo",
			ContextLength: 16385,
			Pricing:       &llm.ModelPricing{Prompt: 0.0000005, Completion: 0.0000015},
		},
		{
			ID:            "o1-mini",
			Name:          "o1-mini",
			Description:   "Small reasoning model",
			ContextLength: 128000,
		},
	}
}
