package anthropic

import (
	"context"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/pcallahan/inkwell/llm"
	"github.com/samber/lo"
)

// ListModels implements llm.Provider.ListModels.
func (c *Client) ListModels(ctx context.Context) []llm.ModelInfo {
	models, err := c.fetchModels(ctx)
	if err != nil || len(models) == 0 {
		c.logger.Warn().Err(err).Msg("Anthropic model fetch failed, using fallback list")
		models = FallbackModels()
	}
	llm.SortModels(models)
	return models
}

func (c *Client) fetchModels(ctx context.Context) ([]llm.ModelInfo, error) {
	page, err := c.api.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, err
	}
	return lo.Map(page.Data, func(m anthropic.ModelInfo, _ int) llm.ModelInfo {
		return llm.ModelInfo{
			ID:   string(m.ID),
			Name: m.DisplayName,
		}
	}), nil
}

// FallbackModels returns the static entries substituted when the live
// catalog fetch fails. All current Claude models share the 200k context
// window.
func FallbackModels() []llm.ModelInfo {
	return []llm.ModelInfo{
		{
			ID:            "claude-opus-4-20250514",
			Name:          "Claude Opus 4",
			Description:   "Most capable model",
			ContextLength: 200000,
			Pricing:       &llm.ModelPricing{Prompt: 0.000015, Completion: 0.000075},
		},
		{
			ID:            "claude-sonnet-4-20250514",
			Name:          "Claude Sonnet 4",
			Description:   "Balanced speed and capability",
			ContextLength: 200000,
			Pricing:       &llm.ModelPricing{Prompt: 0.000003, Completion: 0.000015},
		},
		{
			ID:            "claude-3-5-haiku-20241022",
			Name:          "Claude Haiku 3.5",
			Description:   "Fastest model",
			ContextLength: 200000,
			Pricing:       &llm.ModelPricing{Prompt: 0.0000008, Completion: 0.000004},
		},
	}
}
