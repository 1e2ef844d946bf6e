package api

import (
	"net/http"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// ServiceName identifies the service in the root metadata response.
const ServiceName = "domain-chatbot-backend"

// HealthHandler handles the liveness probe and the root metadata endpoint.
type HealthHandler struct {
	logger log.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger log.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /{$}", h.root)
}

// health is a liveness probe endpoint.
func (h *HealthHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Service is running",
	})
}

// root returns service metadata so a browser hitting the base URL gets
// something useful.
func (h *HealthHandler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": ServiceName,
		"endpoints": []string{
			"POST /api/chat",
			"GET /api/docs",
			"GET /api/chats",
			"GET /api/chats/{chatId}/messages",
			"DELETE /api/chats/{chatId}",
			"GET /health",
		},
	})
}
