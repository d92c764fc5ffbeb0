package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/pcallahan/inkwell/llm"
	"gopkg.in/yaml.v3"
)

// ProviderSettings is the YAML shape of one backend's settings block. All
// fields are optional; absent fields are filled from hard-coded defaults.
// Temperature is a pointer so an explicit 0 survives defaults merging.
type ProviderSettings struct {
	APIKey       string   `yaml:"api_key,omitempty"`
	Model        string   `yaml:"model,omitempty"`
	SystemPrompt string   `yaml:"system_prompt,omitempty"`
	Temperature  *float64 `yaml:"temperature,omitempty"`
	BaseURL      string   `yaml:"base_url,omitempty"`      // openrouter, lmstudio
	Host         string   `yaml:"host,omitempty"`          // ollama
	SiteURL      string   `yaml:"site_url,omitempty"`      // openrouter attribution
	SiteName     string   `yaml:"site_name,omitempty"`     // openrouter attribution
}

// Config is the host configuration file. The core reads it and never
// mutates it; editing and persistence belong to the host's settings layer.
type Config struct {
	APIProvider string           `yaml:"api_provider"`
	Anthropic   ProviderSettings `yaml:"anthropic,omitempty"`
	OpenAI      ProviderSettings `yaml:"openai,omitempty"`
	OpenRouter  ProviderSettings `yaml:"openrouter,omitempty"`
	Ollama      ProviderSettings `yaml:"ollama,omitempty"`
	LMStudio    ProviderSettings `yaml:"lmstudio,omitempty"`
}

// DefaultConfig returns the built-in defaults merged under any loaded file.
func DefaultConfig() *Config {
	return &Config{
		APIProvider: llm.ProviderOpenAI,
		Anthropic:   defaultBlock(llm.ProviderAnthropic),
		OpenAI:      defaultBlock(llm.ProviderOpenAI),
		OpenRouter:  defaultBlock(llm.ProviderOpenRouter),
		Ollama:      defaultBlock(llm.ProviderOllama),
		LMStudio:    defaultBlock(llm.ProviderLMStudio),
	}
}

func defaultBlock(provider string) ProviderSettings {
	d := llm.DefaultSettings(provider)
	t := d.Temperature
	return ProviderSettings{
		Model:       d.Model,
		Temperature: &t,
		BaseURL:     d.BaseURL,
		Host:        d.Host,
	}
}

// Load reads the configuration file at path, merges built-in defaults into
// absent fields, and applies environment variable overrides. A missing file
// is not an error: the defaults plus environment carry a usable config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path) //nolint:gosec // G304: user-specified config path is intentional
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := mergo.Merge(cfg, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to merge config defaults: %w", err)
	}

	applyAnthropicEnv(&cfg.Anthropic)
	applyOpenAIEnv(&cfg.OpenAI)
	applyOpenRouterEnv(&cfg.OpenRouter)
	applyOllamaEnv(&cfg.Ollama)
	applyLMStudioEnv(&cfg.LMStudio)
	if provider := os.Getenv("INKWELL_PROVIDER"); provider != "" {
		cfg.APIProvider = provider
	}

	if !llm.IsSupportedProvider(cfg.APIProvider) {
		return nil, fmt.Errorf("unknown api_provider %q (supported: %v)", cfg.APIProvider, llm.Providers())
	}
	return cfg, nil
}

// Snapshot converts the configuration into the read-only surface the
// dispatcher consumes. Temperatures are clamped into [0, 2] here so
// adapters never see an out-of-range value.
func (c *Config) Snapshot() *llm.Config {
	return &llm.Config{
		ActiveProvider: c.APIProvider,
		Providers: map[string]llm.Settings{
			llm.ProviderAnthropic:  c.Anthropic.toSettings(llm.ProviderAnthropic),
			llm.ProviderOpenAI:     c.OpenAI.toSettings(llm.ProviderOpenAI),
			llm.ProviderOpenRouter: c.OpenRouter.toSettings(llm.ProviderOpenRouter),
			llm.ProviderOllama:     c.Ollama.toSettings(llm.ProviderOllama),
			llm.ProviderLMStudio:   c.LMStudio.toSettings(llm.ProviderLMStudio),
		},
	}
}

func (p ProviderSettings) toSettings(provider string) llm.Settings {
	s := llm.DefaultSettings(provider)
	s.APIKey = p.APIKey
	s.SystemPrompt = p.SystemPrompt
	s.SiteURL = p.SiteURL
	s.SiteName = p.SiteName
	if p.Model != "" {
		s.Model = p.Model
	}
	if p.BaseURL != "" {
		s.BaseURL = p.BaseURL
	}
	if p.Host != "" {
		s.Host = p.Host
	}
	if p.Temperature != nil {
		s.Temperature = llm.ClampTemperature(*p.Temperature)
	}
	return s
}
