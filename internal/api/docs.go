package api

import (
	"net/http"
	"strings"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/ingest"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// DocumentLister reports the documents currently in the index.
type DocumentLister interface {
	Documents() []ingest.DocumentInfo
}

// DocsHandler handles the document listing endpoint.
type DocsHandler struct {
	docs   DocumentLister
	logger log.Logger
}

// NewDocsHandler creates a new docs handler.
func NewDocsHandler(docs DocumentLister, logger log.Logger) *DocsHandler {
	return &DocsHandler{docs: docs, logger: logger}
}

// RegisterRoutes registers docs routes on the given mux.
func (h *DocsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/docs", h.list)
}

// list returns every indexed document. The index is shared across all
// chats; chatId is required for interface compatibility but does not
// filter the listing.
func (h *DocsHandler) list(w http.ResponseWriter, r *http.Request) {
	chatID := strings.TrimSpace(r.URL.Query().Get("chatId"))
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "chatId query parameter is required")
		return
	}

	docs := h.docs.Documents()
	writeJSON(w, http.StatusOK, map[string]any{
		"chatId": chatID,
		"docs":   docs,
		"total":  len(docs),
	})
}
