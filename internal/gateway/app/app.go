package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vibechart/internal/gateway/config"
	"vibechart/internal/gateway/handler"
	"vibechart/internal/gateway/logging"
	"vibechart/internal/gateway/server"
	"vibechart/internal/gateway/service/chart"
	llmclient "vibechart/internal/llm/client"
	llmmw "vibechart/internal/llm/middleware"
	"vibechart/internal/pipeline"
	"vibechart/internal/translate"
)

type App struct {
	server *server.Server
	stores *gatewayStores
	llm    llmclient.LLMClient
	logger *zap.Logger
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// Dependencies
	stores, err := initStores(cfg, logger)
	if err != nil {
		return nil, err
	}
	usage := &llmmw.Usage{}
	client, err := initLLM(ctx, cfg, logger, usage)
	if err != nil {
		_ = stores.Close()
		return nil, err
	}

	var translator pipeline.Translator
	if client != nil {
		translator = translate.New(client, logger, translate.Options{
			Temperature:  cfg.LLM.Temperature,
			MaxTokens:    cfg.LLM.MaxTokens,
			HistoryTurns: cfg.LLM.HistoryTurns,
		})
	}
	orchestrator := pipeline.New(translator, logger)
	chartSvc := chart.New(stores.sessions, stores.datasets, logger)

	stats := func() map[string]any {
		out := map[string]any{
			"llm":          usage.Snapshot(),
			"sessionCache": stores.sessions.Metrics(),
		}
		if client != nil {
			out["provider"] = client.Name()
		}
		return out
	}

	// Routing & Server
	mux := server.NewMux(server.Handlers{
		Vibe:   handler.NewVibeHandler(orchestrator, logger),
		Charts: handler.NewChartsHandler(chartSvc, logger),
		Render: handler.NewRenderHandler(),
		Chat:   handler.NewChatHandler(orchestrator, chartSvc, logger),
		Health: handler.NewHealthHandler(stats),
	}, logger)
	srv := server.New(cfg.Port, mux, logger)

	return &App{
		server: srv,
		stores: stores,
		llm:    client,
		logger: logger,
	}, nil
}

// initLLM returns a nil client, not an error, when no API key is configured so
// the gateway still serves chart storage and rendering.
func initLLM(ctx context.Context, cfg *config.Config, logger *zap.Logger, usage *llmmw.Usage) (llmclient.LLMClient, error) {
	client, err := llmclient.New(ctx, llmclient.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout,
	})
	if errors.Is(err, llmclient.ErrMissingCredentials) {
		logger.Warn("llm api key not configured", zap.String("provider", cfg.LLM.Provider))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init llm client: %w", err)
	}
	logger.Info("llm client ready", zap.String("name", client.Name()))
	return llmmw.Wrap(client,
		llmmw.WithLogging(logger),
		llmmw.WithHooks(),
		llmmw.WithUsage(usage),
		llmmw.RateLimit(cfg.LLM.RPS, 1),
	), nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.llm != nil {
		err = errors.Join(err, a.llm.Close())
	}
	err = errors.Join(err, a.stores.Close())
	_ = a.logger.Sync()
	return err
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
