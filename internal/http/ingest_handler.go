package http

import (
	"io"
	"net/http"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/internal/service"
	"github.com/remsins/webhook/pkg/logger"
)

// maxPayloadBytes caps the accepted webhook body size.
const maxPayloadBytes = 1 << 20

// IngestHandler handles HTTP requests that accept webhooks for delivery.
type IngestHandler struct {
	service *service.IngestService
	logger  logger.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(svc *service.IngestService, logger logger.Logger) *IngestHandler {
	return &IngestHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes registers the ingest routes
func (h *IngestHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /ingest/{subscription_id}", h.handleIngest)
}

// handleIngest handles POST /ingest/{subscription_id}
func (h *IngestHandler) handleIngest(w http.ResponseWriter, r *http.Request) {
	subscriptionID, ok := pathID(w, r, "subscription_id")
	if !ok {
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	eventType := r.Header.Get("X-Event-Type")
	signature := r.Header.Get("X-Signature")

	webhookID, err := h.service.Ingest(r.Context(), subscriptionID, payload, eventType, signature)
	if err != nil {
		if domain.IsNotFound(err) {
			WriteJSONError(w, "Subscription not found", http.StatusNotFound)
			return
		}
		if domain.IsValidation(err) {
			WriteJSONError(w, domain.ValidationMessage(err), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to ingest webhook")
		WriteJSONError(w, "Failed to ingest webhook", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"webhook_id": webhookID,
	})
}
