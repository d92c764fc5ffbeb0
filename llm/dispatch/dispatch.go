// Package dispatch selects the active backend adapter from configuration
// and forwards the provider contract to it uniformly.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/pcallahan/inkwell/llm"
	"github.com/pcallahan/inkwell/llm/anthropic"
	"github.com/pcallahan/inkwell/llm/lmstudio"
	"github.com/pcallahan/inkwell/llm/ollama"
	"github.com/pcallahan/inkwell/llm/openai"
	"github.com/pcallahan/inkwell/llm/openrouter"
	"github.com/rs/zerolog"
)

// Dispatcher resolves the active backend name to an adapter on every call
// and forwards the provider contract 1:1. It owns no state beyond the
// configuration reference; retries and error classification belong to the
// adapters. The configuration may be swapped between calls; each resolve
// takes a settings snapshot so an adapter never observes a torn mid-call
// edit.
type Dispatcher struct {
	mu     sync.RWMutex
	cfg    *llm.Config
	logger zerolog.Logger
}

// New creates a Dispatcher over the given configuration.
func New(cfg *llm.Config, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{cfg: cfg, logger: logger}
}

// SetConfig replaces the configuration reference. Intended for the host's
// settings layer; in-flight calls keep the snapshot they resolved with.
func (d *Dispatcher) SetConfig(cfg *llm.Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg = cfg
}

// ActiveProvider returns the configured backend name.
func (d *Dispatcher) ActiveProvider() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.cfg == nil {
		return ""
	}
	return d.cfg.ActiveProvider
}

// Provider resolves the active backend to a freshly constructed adapter
// bound to a settings snapshot. Backends without a configuration block get
// their hard-coded defaults.
func (d *Dispatcher) Provider() (llm.Provider, error) {
	d.mu.RLock()
	cfg := d.cfg
	d.mu.RUnlock()

	if cfg == nil {
		return nil, fmt.Errorf("no configuration set")
	}
	return d.build(cfg.ActiveProvider, cfg.SettingsFor(cfg.ActiveProvider))
}

func (d *Dispatcher) build(name string, settings llm.Settings) (llm.Provider, error) {
	settings.Temperature = llm.ClampTemperature(settings.Temperature)
	switch name {
	case llm.ProviderAnthropic:
		return anthropic.New(settings, d.logger), nil
	case llm.ProviderOpenAI:
		return openai.New(settings, d.logger), nil
	case llm.ProviderOpenRouter:
		return openrouter.New(settings, d.logger), nil
	case llm.ProviderOllama:
		return ollama.New(settings, d.logger), nil
	case llm.ProviderLMStudio:
		return lmstudio.New(settings, d.logger), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// StreamCompletion forwards to the active adapter.
func (d *Dispatcher) StreamCompletion(ctx context.Context, conversation []llm.Message, onUpdate llm.UpdateFunc) error {
	p, err := d.Provider()
	if err != nil {
		return err
	}
	return p.StreamCompletion(ctx, conversation, onUpdate)
}

// CompletePrompt forwards the legacy single-prompt call to the active
// adapter as a conversation-of-one.
func (d *Dispatcher) CompletePrompt(ctx context.Context, prompt string, onUpdate llm.UpdateFunc) error {
	p, err := d.Provider()
	if err != nil {
		return err
	}
	return llm.CompletePrompt(ctx, p, prompt, onUpdate)
}

// ValidateKey forwards to the active adapter. Resolution failures are
// reported as a typed result, matching the contract that validation never
// fails with an error value.
func (d *Dispatcher) ValidateKey(ctx context.Context) llm.KeyValidation {
	p, err := d.Provider()
	if err != nil {
		return llm.KeyValidation{Error: err.Error()}
	}
	return p.ValidateKey(ctx)
}

// ListModels forwards to the active adapter. A resolution failure yields an
// empty list; adapters themselves never fail.
func (d *Dispatcher) ListModels(ctx context.Context) []llm.ModelInfo {
	p, err := d.Provider()
	if err != nil {
		d.logger.Warn().Err(err).Msg("Cannot list models for unresolved provider")
		return nil
	}
	return p.ListModels(ctx)
}

// ImageUploader probes the active adapter for the upload capability.
func (d *Dispatcher) ImageUploader() (llm.ImageUploader, bool) {
	p, err := d.Provider()
	if err != nil {
		return nil, false
	}
	return llm.AsImageUploader(p)
}

// ImageAnalyzer probes the active adapter for the analysis capability.
func (d *Dispatcher) ImageAnalyzer() (llm.ImageAnalyzer, bool) {
	p, err := d.Provider()
	if err != nil {
		return nil, false
	}
	return llm.AsImageAnalyzer(p)
}
