package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/ai/gemini"
	"github.com/spigell/career-compass/internal/ai/openrouter"
	"github.com/spigell/career-compass/internal/catalog"
	"github.com/spigell/career-compass/internal/dataset"
	"github.com/spigell/career-compass/internal/history"
	"github.com/spigell/career-compass/internal/jobs"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/recommend"
	"github.com/spigell/career-compass/internal/secrets"
)

// bootstrap creates the logger and reads the config. Both are required by
// every command, so failures are fatal.
func bootstrap() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return l, config
}

func loadCatalog(ctx context.Context, config *Config, l *zap.Logger) (*catalog.Catalog, error) {
	var src *dataset.Source

	paths := config.Datasets
	if dataset.IsRemote(paths.Careers) || dataset.IsRemote(paths.Mentors) ||
		dataset.IsRemote(paths.Roadmaps) || dataset.IsRemote(paths.Model) {
		client, err := dataset.NewS3Client(ctx, config.S3)
		if err != nil {
			return nil, fmt.Errorf("creating s3 client: %w", err)
		}
		src = dataset.NewSource(client)
	} else {
		src = dataset.NewSource(nil)
	}

	ds, err := dataset.LoadAll(ctx, src, paths, l)
	if err != nil {
		return nil, fmt.Errorf("loading datasets: %w", err)
	}

	return catalog.New(ds, l), nil
}

// newJobsClient returns nil without an error when job search is disabled.
func newJobsClient(config *Config, l *zap.Logger) (*jobs.Client, error) {
	cfg := config.Jobs
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "jooble api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "JOOBLE_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set jobs.api-key-file or JOOBLE_API_KEY)", err)
	}

	return jobs.New(l, apiKey, cfg.Config, jobs.NewRejectedTitles(recommend.DefaultRejectionSet()))
}

// newAssistant returns nil without an error when the assistant is disabled.
func newAssistant(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Assistant, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "openrouter":
		return newOpenRouterAssistant(cfg.OpenRouter, l)
	case "gemini":
		return newGeminiAssistant(ctx, cfg.Gemini, l)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newOpenRouterAssistant(cfg *OpenRouterConfig, l *zap.Logger) (ai.Assistant, error) {
	if cfg == nil {
		cfg = &OpenRouterConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "openrouter api key",
		File: cfg.APIKeyFile,
		Env:  "OPENROUTER_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.openrouter.api-key-file or OPENROUTER_API_KEY)", err)
	}

	client, err := openrouter.New(apiKey, cfg.Config, l)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newGeminiAssistant(ctx context.Context, cfg *GeminiConfig, l *zap.Logger) (ai.Assistant, error) {
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithProvider(l, "gemini", cfg.Model).With(
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAssistant(generator, l, cfg.MaxLogLength), nil
}

// openHistory returns nil without an error when no database is configured.
func openHistory(ctx context.Context, config *Config, l *zap.Logger) (*history.Store, error) {
	if config.History == nil || strings.TrimSpace(config.History.DatabaseURL) == "" {
		return nil, nil
	}

	store, err := history.Connect(ctx, config.History.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	l.Info("history store connected")
	return store, nil
}
