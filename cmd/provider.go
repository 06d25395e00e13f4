package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/llm"
	"github.com/spigell/ats-screener/internal/llm/gemini"
	"github.com/spigell/ats-screener/internal/llm/groq"
	"github.com/spigell/ats-screener/internal/logger"
)

const (
	providerOpenAI = "openai"
	openAIBaseURL  = "https://api.openai.com/v1"
	openAIModel    = "gpt-4o-mini"
)

// newCompleter builds the model backend selected by cfg.Provider, wrapped
// with request/response debug logging.
func newCompleter(ctx context.Context, cfg AIConfig, log *zap.Logger) (llm.Completer, error) {
	var (
		model     llm.Completer
		modelName string
	)

	provider := cfg.Provider
	switch provider {
	case "", groq.Provider:
		provider = groq.Provider
		client, err := groq.New(groq.Options{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
		if err != nil {
			return nil, fmt.Errorf("creating groq client: %w", err)
		}
		model, modelName = client, client.Model()
	case providerOpenAI:
		opts := groq.Options{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL, Provider: providerOpenAI}
		if opts.BaseURL == "" {
			opts.BaseURL = openAIBaseURL
		}
		if opts.Model == "" {
			opts.Model = openAIModel
		}
		client, err := groq.New(opts)
		if err != nil {
			return nil, fmt.Errorf("creating openai client: %w", err)
		}
		model, modelName = client, client.Model()
	case gemini.Provider:
		generator, err := gemini.NewGenerator(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		model, modelName = generator, generator.Model()
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	backendLogger := logger.WithBackend(log, provider, modelName)
	backendLogger.Info("model backend ready")

	return llm.WithLogging(model, backendLogger, cfg.MaxLogLength), nil
}
