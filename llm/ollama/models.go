package ollama

import (
	"context"

	"github.com/ollama/ollama/api"
	"github.com/pcallahan/inkwell/llm"
	"github.com/samber/lo"
)

// ListModels implements llm.Provider.ListModels. The catalog is whatever
// the local server has pulled; when it is unreachable the fallback names
// common pullable models.
func (c *Client) ListModels(ctx context.Context) []llm.ModelInfo {
	models, err := c.fetchModels(ctx)
	if err != nil || len(models) == 0 {
		c.logger.Warn().Err(err).Msg("Ollama model fetch failed, using fallback list")
		models = FallbackModels()
	}
	llm.SortModels(models)
	return models
}

func (c *Client) fetchModels(ctx context.Context) ([]llm.ModelInfo, error) {
	list, err := c.api.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list.Models, func(m api.ListModelResponse, _ int) llm.ModelInfo {
		return llm.ModelInfo{
			ID:          m.Name,
			Name:        m.Name,
			Description: m.Details.ParameterSize,
		}
	}), nil
}

// FallbackModels returns the static entries substituted when the local
// server cannot be reached.
func FallbackModels() []llm.ModelInfo {
	return []llm.ModelInfo{
		{ID: "llama3.1", Name: "llama3.1", Description: "8B"},
		{ID: "llama3.1:70b", Name: "llama3.1:70b", Description: "70B"},
		{ID: "mistral", Name: "mistral", Description: "7B"},
		{ID: "qwen2.5", Name: "qwen2.5", Description: "7B"},
		{ID: "gemma2", Name: "gemma2", Description: "9B"},
	}
}
