package llm

// Supported backend names. Exactly one settings block exists per name.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderLMStudio   = "lmstudio"
)

// DefaultTemperature is the backend default substituted when a model
// rejects the configured temperature.
const DefaultTemperature = 1.0

// Providers lists every supported backend name in presentation order.
func Providers() []string {
	return []string{
		ProviderAnthropic,
		ProviderOpenAI,
		ProviderOpenRouter,
		ProviderOllama,
		ProviderLMStudio,
	}
}

// IsSupportedProvider reports whether name is a known backend.
func IsSupportedProvider(name string) bool {
	switch name {
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderOllama, ProviderLMStudio:
		return true
	default:
		return false
	}
}

// DefaultSettings returns the hard-coded sane defaults for a backend, used
// when a configuration block is absent. Unknown names get an empty block
// with only the default temperature set.
func DefaultSettings(provider string) Settings {
	s := Settings{Temperature: DefaultTemperature}
	switch provider {
	case ProviderAnthropic:
		s.Model = "claude-sonnet-4-20250514"
	case ProviderOpenAI:
		s.Model = "gpt-4o"
	case ProviderOpenRouter:
		s.Model = "openai/gpt-4o"
		s.BaseURL = "https://openrouter.ai/api/v1"
	case ProviderOllama:
		s.Model = "llama3.1"
		s.Host = "http://localhost:11434"
	case ProviderLMStudio:
		s.Model = "local-model"
		s.BaseURL = "http://localhost:1234/v1"
	}
	return s
}

// ClampTemperature forces a temperature into the valid [0, 2] range.
func ClampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 2 {
		return 2
	}
	return t
}
