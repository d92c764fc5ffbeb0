package llm

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// StreamAttempt performs one streaming attempt at the given temperature and
// reports how many fragments it delivered to the update callback before
// returning. Adapters supply this; RunStream owns the retry and
// classification policy around it.
type StreamAttempt func(ctx context.Context, temperature float64) (fragments int, err error)

// RunStream drives one streaming call through the shared retry and
// error-classification policy:
//
//   - Cancellation is not an error; the call returns nil.
//   - If the attempt fails with a temperature rejection and the configured
//     temperature is not the backend default, the entire call is retried
//     exactly once with the temperature forced to the default. A second
//     failure is terminal.
//   - Any other failure is wrapped into a single opaque backend error; the
//     original diagnostic detail is logged, not surfaced.
//   - A stream that completes with zero fragments is success, flagged at
//     warn level as a model-specific anomaly.
func RunStream(ctx context.Context, provider string, temperature float64, logger zerolog.Logger, attempt StreamAttempt) error {
	fragments, err := attempt(ctx, temperature)
	if err != nil && TemperatureRejected(err) && temperature != DefaultTemperature {
		logger.Warn().
			Str("provider", provider).
			Float64("temperature", temperature).
			Msg("Model rejected temperature, retrying with default")
		fragments, err = attempt(ctx, DefaultTemperature)
	}

	if err != nil {
		if canceled(ctx, err) {
			logger.Debug().Str("provider", provider).Msg("Stream cancelled")
			return nil
		}
		wrapped := NewBackendError(provider, err)
		logger.Error().
			Err(err).
			Str("provider", provider).
			Str("error_type", string(wrapped.Type)).
			Msg("Streaming call failed")
		return wrapped
	}

	if fragments == 0 {
		logger.Warn().
			Str("provider", provider).
			Msg("Stream completed with zero fragments")
	}
	return nil
}

// canceled reports whether an attempt failure is the caller's cancellation
// signal rather than a backend failure.
func canceled(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	return ctx.Err() != nil
}
