package config

import "os"

// applyOpenRouterEnv applies environment variable overrides for the
// OpenRouter settings block.
func applyOpenRouterEnv(p *ProviderSettings) {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		p.APIKey = key
	}
	if model := os.Getenv("OPENROUTER_MODEL"); model != "" {
		p.Model = model
	}
}
