package config

import "os"

// applyOpenAIEnv applies environment variable overrides for the OpenAI
// settings block.
func applyOpenAIEnv(p *ProviderSettings) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		p.APIKey = key
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		p.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		p.Model = model
	}
}
