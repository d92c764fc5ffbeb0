package config

import "os"

// applyAnthropicEnv applies environment variable overrides for the
// Anthropic settings block.
func applyAnthropicEnv(p *ProviderSettings) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		p.APIKey = key
	}
	if model := os.Getenv("ANTHROPIC_MODEL"); model != "" {
		p.Model = model
	}
}
