package config

import "os"

// applyLMStudioEnv applies environment variable overrides for the LM Studio
// settings block.
func applyLMStudioEnv(p *ProviderSettings) {
	if baseURL := os.Getenv("LMSTUDIO_BASE_URL"); baseURL != "" {
		p.BaseURL = baseURL
	}
	if model := os.Getenv("LMSTUDIO_MODEL"); model != "" {
		p.Model = model
	}
}
