// Package app wires configuration, the model client, the vector index,
// the ingestion pipeline and the HTTP server into a runnable application.
package app

import (
	"context"
	"fmt"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/api"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/chat"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/config"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/huggingface"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/ingest"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/knowledge"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/session"
)

// App holds every initialized component. Call Close when done.
type App struct {
	Config *config.Config
	Logger log.Logger

	Model     *huggingface.Client
	Knowledge *knowledge.Store
	Pipeline  *ingest.Pipeline
	Sessions  *session.Store
	Chat      *chat.Service
	Server    *api.Server

	cancel context.CancelFunc
}

// Setup creates and initializes the application.
// Document ingestion runs before this returns, so a ready App already
// has its index populated from the data directory.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	if !cfg.HuggingFaceConfigured() {
		logger.Warn("HuggingFace credentials missing, chat requests will fail until configured")
	}

	a.Model = huggingface.New(huggingface.Config{
		BaseURL:         cfg.HFBaseURL,
		Token:           cfg.HuggingFaceToken,
		EmbeddingsModel: cfg.HuggingFaceEmbeddingsModel,
		ChatModel:       cfg.HuggingFaceChatModel,
		Timeout:         cfg.RequestTimeout,
	}, logger)

	store, err := knowledge.NewStore(a.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("create knowledge store: %w", err)
	}
	a.Knowledge = store

	a.Pipeline = ingest.NewPipeline(store, ingest.Config{
		DataDirectory: cfg.DataDirectory,
		ChunkSize:     cfg.ChunkSize,
		ChunkOverlap:  cfg.ChunkOverlap,
	}, nil, logger)

	if cfg.HuggingFaceConfigured() {
		if _, err := a.Pipeline.Run(ctx); err != nil {
			return nil, fmt.Errorf("ingest documents: %w", err)
		}
	} else {
		logger.Warn("skipping document ingestion, no embeddings credentials")
	}

	a.Sessions = session.NewStore(logger)

	a.Chat = chat.NewService(a.Sessions, store, a.Model, chat.Options{
		MaxTokens:          cfg.MaxTokens,
		TopK:               cfg.TopK,
		MaxHistoryMessages: cfg.MaxHistoryMessages,
	}, logger)

	a.Server = api.NewServer(a.Chat, a.Sessions, a.Pipeline, cfg.AllowedOrigins, logger)

	_, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	return a, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.Server.Run(ctx, a.Config.Addr())
}

// Close releases application resources. Sessions and the index are
// in-memory only, so there is nothing to flush.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	return nil
}
