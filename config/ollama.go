package config

import "os"

// applyOllamaEnv applies environment variable overrides for the Ollama
// settings block.
func applyOllamaEnv(p *ProviderSettings) {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		p.Host = host
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		p.Model = model
	}
}
