// Command server runs the aibackend item and AI assistant API.
//
// Configuration is read from a YAML file, a .env file, and environment
// variables (see pkg/config). Commonly used variables:
//
//	OPENAI_API_KEY        - API key for the completion backend
//	AIBACKEND_PROVIDER    - "openai" or "litellm" (default: "openai")
//	AIBACKEND_BASE_URL    - Completion backend URL (default: https://api.openai.com)
//	AIBACKEND_MODEL       - Model name (default: gpt-3.5-turbo)
//	AIBACKEND_PORT        - Listen port (default: 8000)
//	AIBACKEND_DEBUG       - Debug categories, e.g. "providers,engine" or "all"
//	AIBACKEND_LOG_LEVEL   - DEBUG, INFO, WARN, ERROR, or TRACE
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rhuss/aibackend/pkg/config"
	"github.com/rhuss/aibackend/pkg/debug"
	"github.com/rhuss/aibackend/pkg/engine"
	"github.com/rhuss/aibackend/pkg/provider"
	"github.com/rhuss/aibackend/pkg/provider/litellm"
	"github.com/rhuss/aibackend/pkg/provider/openai"
	"github.com/rhuss/aibackend/pkg/storage/memory"
	transporthttp "github.com/rhuss/aibackend/pkg/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	// Create provider.
	prov, err := newProvider(cfg.Engine)
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}
	defer prov.Close()

	if cfg.Engine.APIKey == "" {
		logger.Warn("no API key configured, AI endpoints will report the backend as unavailable")
	}

	// Create item store.
	var store *memory.Store
	if cfg.Storage.Seed {
		store = memory.New(memory.SeedItems()...)
	} else {
		store = memory.New()
	}
	logger.Info("item store ready", "type", "memory", "items", store.Len())

	// Create engine.
	eng, err := engine.New(prov, engine.Config{Model: cfg.Engine.Model})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	srv := transporthttp.NewServer(store, eng,
		transporthttp.WithAddr(":"+strconv.Itoa(cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithReadTimeout(cfg.Server.ReadTimeout),
		transporthttp.WithWriteTimeout(cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithCORSOrigins(cfg.Server.CORSOrigins...),
		transporthttp.WithMetrics(cfg.Observability.Metrics.Enabled, cfg.Observability.Metrics.Path),
		transporthttp.WithLogger(logger),
	)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"provider", prov.Name(),
		"backend", cfg.Engine.BaseURL,
		"model", eng.Model(),
		"metrics", cfg.Observability.Metrics.Enabled,
	)

	return srv.Run(ctx)
}

// newProvider creates the completion backend selected by cfg.Provider.
func newProvider(cfg config.EngineConfig) (provider.Provider, error) {
	switch cfg.Provider {
	case "openai":
		p, err := openai.New(openai.Config{
			BaseURL:      cfg.BaseURL,
			APIKey:       cfg.APIKey,
			Timeout:      cfg.Timeout,
			ModelMapping: cfg.ModelMapping,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case "litellm":
		p, err := litellm.New(litellm.Config{
			BaseURL:      cfg.BaseURL,
			APIKey:       cfg.APIKey,
			Timeout:      cfg.Timeout,
			ModelMapping: cfg.ModelMapping,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
