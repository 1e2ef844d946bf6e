// Package api provides the HTTP REST API for the document chatbot.
//
// Endpoints:
//
//	GET    /                          → service metadata
//	GET    /health                    → liveness probe
//	POST   /api/chat                  → one retrieval-augmented chat turn
//	GET    /api/chats                 → list chat sessions
//	GET    /api/chats/{chatId}/messages → full message history for a chat
//	DELETE /api/chats/{chatId}        → delete a chat session
//	GET    /api/docs                  → indexed document listing
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (recovery, CORS, logging)
//   - health.go: liveness and metadata endpoints
//   - chat.go: chat endpoint
//   - session.go: chat session endpoints
//   - docs.go: document listing endpoint
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/chat"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/ingest"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/session"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "localhost:8001"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Hosted model calls can be slow, so this stays generous.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the chatbot REST API.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger

	// Handlers
	health  *HealthHandler
	chat    *ChatHandler
	session *SessionHandler
	docs    *DocsHandler

	allowedOrigins []string
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(chatSvc *chat.Service, store *session.Store, pipeline *ingest.Pipeline, allowedOrigins []string, logger log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:            mux,
		logger:         logger,
		health:         NewHealthHandler(logger),
		chat:           NewChatHandler(chatSvc, logger),
		session:        NewSessionHandler(store, logger),
		docs:           NewDocsHandler(pipeline, logger),
		allowedOrigins: allowedOrigins,
	}

	// Register all routes
	s.health.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)
	s.session.RegisterRoutes(mux)
	s.docs.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → CORS → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		corsMiddleware(s.allowedOrigins),
		loggingMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
