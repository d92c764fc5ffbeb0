package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pcallahan/inkwell/llm"
	"github.com/samber/lo"
)

// fetchMaxElapsed bounds the transient-retry window for a catalog fetch.
// The fetch backs a UI picker; after this the fallback list is substituted.
const fetchMaxElapsed = 5 * time.Second

// modelsResponse mirrors the OpenRouter models endpoint payload. Pricing
// values arrive as decimal strings.
type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	ContextLength int64        `json:"context_length"`
	Pricing       modelPricing `json:"pricing"`
}

type modelPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// ListModels implements llm.Provider.ListModels. Transient network failures
// are retried briefly with exponential backoff; any remaining failure is
// absorbed by the fallback list.
func (c *Client) ListModels(ctx context.Context) []llm.ModelInfo {
	var models []llm.ModelInfo

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = fetchMaxElapsed
	err := backoff.Retry(func() error {
		var fetchErr error
		models, fetchErr = c.fetchModels(ctx)
		return fetchErr
	}, backoff.WithContext(policy, ctx))

	if err != nil || len(models) == 0 {
		c.logger.Warn().Err(err).Msg("OpenRouter model fetch failed, using fallback list")
		models = FallbackModels()
	}
	llm.SortModels(models)
	return models
}

func (c *Client) fetchModels(ctx context.Context) ([]llm.ModelInfo, error) {
	endpoint := baseURL(c.settings) + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Auth and client errors won't heal on retry.
		err := fmt.Errorf("models endpoint returned status %d", resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	var payload modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, backoff.Permanent(err)
	}

	return lo.Map(payload.Data, func(m modelEntry, _ int) llm.ModelInfo {
		return llm.ModelInfo{
			ID:            m.ID,
			Name:          displayName(m),
			Description:   m.Description,
			ContextLength: m.ContextLength,
			Pricing:       toPricing(m.Pricing),
		}
	}), nil
}

func displayName(m modelEntry) string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// toPricing parses the endpoint's decimal-string pricing. Unparseable or
// absent pricing yields nil rather than a zero value, so free and unknown
// stay distinguishable.
func toPricing(p modelPricing) *llm.ModelPricing {
	prompt, errP := strconv.ParseFloat(p.Prompt, 64)
	completion, errC := strconv.ParseFloat(p.Completion, 64)
	if errP != nil || errC != nil {
		return nil
	}
	return &llm.ModelPricing{Prompt: prompt, Completion: completion}
}

// FallbackModels returns the static entries substituted when the live
// catalog fetch fails.
func FallbackModels() []llm.ModelInfo {
	return []llm.ModelInfo{
		{
			ID:            "anthropic/claude-sonnet-4",
			Name:          "Anthropic: Claude Sonnet 4",
			ContextLength: 200000,
			Pricing:       &llm.ModelPricing{Prompt: 0.000003, Completion: 0.000015},
		},
		{
			ID:            "openai/gpt-4o",
			Name:          "OpenAI: GPT-4o",
			ContextLength: 128000,
			Pricing:       &llm.ModelPricing{Prompt: 0.0000025, Completion: 0.00001},
		},
		{
			ID:            "google/gemini-2.0-flash-001",
			Name:          "Google: Gemini 2.0 Flash",
			ContextLength: 1000000,
			Pricing:       &llm.ModelPricing{Prompt: 0.0000001, Completion: 0.0000004},
		},
		{
			ID:            "meta-llama/llama-3.1-70b-instruct",
			Name:          "Meta: Llama 3.1 70B Instruct",
			ContextLength: 131072,
			Pricing:       &llm.ModelPricing{Prompt: 0.0000003, Completion: 0.0000003},
		},
		{
			ID:            "mistralai/mistral-large",
			Name:          "Mistral: Mistral Large",
			ContextLength: 128000,
			Pricing:       &llm.ModelPricing{Prompt: 0.000002, Completion: 0.000006},
		},
	}
}
