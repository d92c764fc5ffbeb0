package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pcallahan/inkwell/catalog"
	"github.com/pcallahan/inkwell/config"
	"github.com/pcallahan/inkwell/llm"
	"github.com/pcallahan/inkwell/llm/dispatch"
	inkwelllogger "github.com/pcallahan/inkwell/logger"
)

const defaultConfigPath = "inkwell.yaml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", defaultConfigPath, "Path to configuration file")
		provider   = flag.String("provider", "", "Override the active provider")
		listModels = flag.Bool("models", false, "List models for the active provider")
		refresh    = flag.Bool("refresh", false, "Bypass the model catalog cache")
		validate   = flag.Bool("validate", false, "Validate the active provider's API key")
	)
	flag.Parse()

	// Optional; keys can come from the environment or a .env file.
	_ = godotenv.Load()

	log, err := inkwelllogger.InitWithOptions("", true)
	if err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *provider != "" {
		if !llm.IsSupportedProvider(*provider) {
			return fmt.Errorf("unknown provider %q (supported: %v)", *provider, llm.Providers())
		}
		cfg.APIProvider = *provider
	}

	dispatcher := dispatch.New(cfg.Snapshot(), log)

	// Ctrl-C cancels the in-flight call; cancellation is not an error.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *validate:
		return runValidate(ctx, dispatcher)
	case *listModels:
		models := catalog.NewService(dispatcher, log).GetModels(ctx, *refresh)
		printModels(dispatcher.ActiveProvider(), models)
		return nil
	default:
		prompt := strings.TrimSpace(strings.Join(flag.Args(), " "))
		if prompt == "" {
			return fmt.Errorf("usage: inkwell [flags] <prompt>")
		}
		return runPrompt(ctx, dispatcher, prompt)
	}
}

func runValidate(ctx context.Context, dispatcher *dispatch.Dispatcher) error {
	result := dispatcher.ValidateKey(ctx)
	if result.Valid {
		fmt.Printf("%s: API key is valid\n", dispatcher.ActiveProvider())
		return nil
	}
	fmt.Printf("%s: %s\n", dispatcher.ActiveProvider(), result.Error)
	return nil
}

func printModels(provider string, models []llm.ModelInfo) {
	fmt.Printf("Models for %s:\n", provider)
	for _, m := range models {
		line := fmt.Sprintf("  %-48s %s", m.ID, m.Name)
		if m.ContextLength > 0 {
			line += fmt.Sprintf(" (context: %d)", m.ContextLength)
		}
		fmt.Println(line)
	}
}

func runPrompt(ctx context.Context, dispatcher *dispatch.Dispatcher, prompt string) error {
	err := dispatcher.CompletePrompt(ctx, prompt, func(fragment string) {
		fmt.Print(fragment)
	})
	fmt.Println()
	return err
}
