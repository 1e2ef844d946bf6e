package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/session"
)

// SessionHandler handles chat session endpoints.
type SessionHandler struct {
	store  *session.Store
	logger log.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(store *session.Store, logger log.Logger) *SessionHandler {
	return &SessionHandler{store: store, logger: logger}
}

// RegisterRoutes registers session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/chats", h.list)
	mux.HandleFunc("GET /api/chats/{chatId}/messages", h.messages)
	mux.HandleFunc("DELETE /api/chats/{chatId}", h.delete)
}

// list returns metadata for every active chat session.
func (h *SessionHandler) list(w http.ResponseWriter, _ *http.Request) {
	chats := h.store.ListSessions()
	writeJSON(w, http.StatusOK, map[string]any{
		"chats": chats,
		"total": len(chats),
	})
}

// messages returns the full message history for one chat.
func (h *SessionHandler) messages(w http.ResponseWriter, r *http.Request) {
	chatID := strings.TrimSpace(r.PathValue("chatId"))
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "chatId cannot be empty")
		return
	}

	msgs, err := h.store.Messages(chatID)
	if errors.Is(err, session.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "chat session not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to read messages", "chat_id", chatID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"chatId":   chatID,
		"messages": msgs,
		"total":    len(msgs),
	})
}

// delete removes a chat session and its history.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request) {
	chatID := strings.TrimSpace(r.PathValue("chatId"))
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "chatId cannot be empty")
		return
	}

	if err := h.store.Delete(chatID); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "chat session not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "chat session deleted",
	})
}
