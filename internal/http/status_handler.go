package http

import (
	"net/http"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/internal/service"
	"github.com/remsins/webhook/pkg/logger"
)

// StatusHandler handles HTTP requests for webhook delivery status.
type StatusHandler struct {
	service *service.StatusService
	logger  logger.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(svc *service.StatusService, logger logger.Logger) *StatusHandler {
	return &StatusHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes registers the status routes
func (h *StatusHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /status/{webhook_id}", h.handleStatus)
}

// handleStatus handles GET /status/{webhook_id}
func (h *StatusHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	webhookID, ok := pathID(w, r, "webhook_id")
	if !ok {
		return
	}

	status, err := h.service.WebhookStatus(r.Context(), webhookID)
	if err != nil {
		if domain.IsNotFound(err) {
			WriteJSONError(w, "No delivery logs for given webhook_id", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get webhook status")
		WriteJSONError(w, "Failed to get webhook status", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
