package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestRunStreamDeliversFragmentsInOrder(t *testing.T) {
	var received []string
	onUpdate := func(fragment string) { received = append(received, fragment) }

	err := RunStream(context.Background(), "openai", 0.7, zerolog.Nop(), func(_ context.Context, _ float64) (int, error) {
		for _, f := range []string{"Hel", "lo"} {
			onUpdate(f)
		}
		return 2, nil
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(received) != 2 || received[0] != "Hel" || received[1] != "lo" {
		t.Errorf("Expected fragments [Hel lo] in order, got %v", received)
	}
}

func TestRunStreamRetriesOnceOnTemperatureRejection(t *testing.T) {
	var temps []float64
	err := RunStream(context.Background(), "openai", 0.2, zerolog.Nop(), func(_ context.Context, temperature float64) (int, error) {
		temps = append(temps, temperature)
		if temperature != DefaultTemperature {
			return 0, errors.New("model does not support temperature=0.2")
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if len(temps) != 2 {
		t.Fatalf("Expected exactly 2 attempts, got %d", len(temps))
	}
	if temps[0] != 0.2 || temps[1] != DefaultTemperature {
		t.Errorf("Expected attempts at [0.2 1.0], got %v", temps)
	}
}

func TestRunStreamNoRetryWhenTemperatureIsDefault(t *testing.T) {
	attempts := 0
	err := RunStream(context.Background(), "openai", DefaultTemperature, zerolog.Nop(), func(_ context.Context, _ float64) (int, error) {
		attempts++
		return 0, errors.New("model does not support temperature=1.0")
	})
	if attempts != 1 {
		t.Errorf("Expected exactly 1 attempt when configured temperature is the default, got %d", attempts)
	}
	if err == nil {
		t.Fatal("Expected terminal error")
	}
}

func TestRunStreamRetryFailureIsTerminal(t *testing.T) {
	attempts := 0
	err := RunStream(context.Background(), "anthropic", 0.3, zerolog.Nop(), func(_ context.Context, _ float64) (int, error) {
		attempts++
		return 0, errors.New("model does not support temperature settings")
	})
	if attempts != 2 {
		t.Errorf("Expected exactly 2 attempts, got %d", attempts)
	}
	if !IsBackendError(err) {
		t.Fatalf("Expected wrapped backend error, got %v", err)
	}
	if err.Error() != "failed to get response from anthropic" {
		t.Errorf("Expected opaque message, got %q", err.Error())
	}
}

func TestRunStreamCancellationIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := RunStream(ctx, "openai", 0.7, zerolog.Nop(), func(ctx context.Context, _ float64) (int, error) {
		cancel()
		return 1, ctx.Err()
	})
	if err != nil {
		t.Errorf("Expected cancellation to resolve silently, got %v", err)
	}
}

func TestRunStreamCancellationWinsOverTemperatureRetry(t *testing.T) {
	// A cancelled call must not be retried even if the transport error
	// happens to mention temperature.
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RunStream(ctx, "openai", 0.2, zerolog.Nop(), func(_ context.Context, _ float64) (int, error) {
		attempts++
		cancel()
		return 0, context.Canceled
	})
	if err != nil {
		t.Errorf("Expected silent resolution, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestRunStreamWrapsTerminalErrors(t *testing.T) {
	original := errors.New("dial tcp: connection refused")
	err := RunStream(context.Background(), "ollama", 0.7, zerolog.Nop(), func(_ context.Context, _ float64) (int, error) {
		return 0, original
	})
	if err == nil {
		t.Fatal("Expected terminal error")
	}
	var llmErr *Error
	if !errors.As(err, &llmErr) {
		t.Fatalf("Expected *llm.Error, got %T", err)
	}
	if llmErr.Message != "failed to get response from ollama" {
		t.Errorf("Expected opaque message, got %q", llmErr.Message)
	}
	if !errors.Is(err, original) {
		t.Error("Expected original error retained for diagnostics")
	}
}

func TestRunStreamZeroFragmentsIsSuccess(t *testing.T) {
	err := RunStream(context.Background(), "lmstudio", 0.7, zerolog.Nop(), func(_ context.Context, _ float64) (int, error) {
		return 0, nil
	})
	if err != nil {
		t.Errorf("Expected zero-fragment stream to be success, got %v", err)
	}
}
