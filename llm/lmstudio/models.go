package lmstudio

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pcallahan/inkwell/llm"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
)

// fetchMaxElapsed bounds the transient-retry window; a local server that is
// still loading often answers on a second attempt moments later.
const fetchMaxElapsed = 3 * time.Second

// ListModels implements llm.Provider.ListModels. The catalog is whatever
// models the local server has loaded; failures fall back to a generic
// entry so the picker is never empty.
func (c *Client) ListModels(ctx context.Context) []llm.ModelInfo {
	var models []llm.ModelInfo

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = fetchMaxElapsed
	err := backoff.Retry(func() error {
		list, fetchErr := c.api.ListModels(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		models = lo.Map(list.Models, func(m openai.Model, _ int) llm.ModelInfo {
			return llm.ModelInfo{ID: m.ID, Name: m.ID}
		})
		return nil
	}, backoff.WithContext(policy, ctx))

	if err != nil || len(models) == 0 {
		c.logger.Warn().Err(err).Msg("LM Studio model fetch failed, using fallback list")
		models = FallbackModels()
	}
	llm.SortModels(models)
	return models
}

// FallbackModels returns the static entries substituted when the local
// server cannot be reached. "local-model" matches any loaded model.
func FallbackModels() []llm.ModelInfo {
	return []llm.ModelInfo{
		{ID: "local-model", Name: "Currently loaded model", Description: "Whichever model LM Studio has loaded"},
	}
}
