package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/chat"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// ChatService runs a single retrieval-augmented chat turn.
type ChatService interface {
	Chat(ctx context.Context, req chat.Request) (chat.Response, error)
}

// ChatHandler handles the chat endpoint.
type ChatHandler struct {
	svc    ChatService
	logger log.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc ChatService, logger log.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.handleChat)
}

// handleChat runs one chat turn.
// Upstream failures return 502 with a generic message; provider details
// stay in the logs.
func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	resp, err := h.svc.Chat(r.Context(), req)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "invalid_request", "message cannot be empty")
	case errors.Is(err, chat.ErrUpstreamModel):
		writeError(w, http.StatusBadGateway, "upstream_error", "the language model is temporarily unavailable")
	case err != nil:
		h.logger.Error("chat turn failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}
