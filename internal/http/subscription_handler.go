package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/internal/service"
	"github.com/remsins/webhook/pkg/logger"
)

// SubscriptionHandler handles HTTP requests for subscription CRUD and
// the per-subscription attempt listing.
type SubscriptionHandler struct {
	service *service.SubscriptionService
	status  *service.StatusService
	logger  logger.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(svc *service.SubscriptionService, status *service.StatusService, logger logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: svc,
		status:  status,
		logger:  logger,
	}
}

// RegisterRoutes registers the subscription routes
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /subscriptions/{$}", h.handleCreate)
	mux.HandleFunc("GET /subscriptions/{$}", h.handleList)
	mux.HandleFunc("GET /subscriptions/{id}", h.handleGet)
	mux.HandleFunc("PATCH /subscriptions/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /subscriptions/{id}", h.handleDelete)
	mux.HandleFunc("GET /subscriptions/{id}/attempts", h.handleListAttempts)
}

// pathID extracts and validates the {id} path segment. A malformed UUID
// yields a 422 with the field location, mirroring body validation.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	if _, err := uuid.Parse(raw); err != nil {
		WriteValidationError(w, []string{"path", name}, "value is not a valid uuid", "uuid_parsing")
		return "", false
	}
	return raw, true
}

// handleCreate handles POST /subscriptions/
func (h *SubscriptionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetURL string   `json:"target_url"`
		Secret    *string  `json:"secret"`
		Events    []string `json:"events"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := h.service.Create(r.Context(), req.TargetURL, req.Secret, req.Events)
	if err != nil {
		if domain.IsValidation(err) {
			WriteValidationError(w, []string{"body", "target_url"}, domain.ValidationMessage(err), "value_error")
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create subscription")
		WriteJSONError(w, "Failed to create subscription", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// handleList handles GET /subscriptions/
func (h *SubscriptionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	subs, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list subscriptions")
		WriteJSONError(w, "Failed to list subscriptions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

// handleGet handles GET /subscriptions/{id}
func (h *SubscriptionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sub, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			WriteJSONError(w, "Subscription not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get subscription")
		WriteJSONError(w, "Failed to get subscription", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// handleUpdate handles PATCH /subscriptions/{id}
func (h *SubscriptionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var update domain.SubscriptionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := h.service.Update(r.Context(), id, &update)
	if err != nil {
		if domain.IsNotFound(err) {
			WriteJSONError(w, "Subscription not found", http.StatusNotFound)
			return
		}
		if domain.IsValidation(err) {
			WriteValidationError(w, []string{"body", "target_url"}, domain.ValidationMessage(err), "value_error")
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to update subscription")
		WriteJSONError(w, "Failed to update subscription", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// handleDelete handles DELETE /subscriptions/{id}
func (h *SubscriptionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if domain.IsNotFound(err) {
			WriteJSONError(w, "Subscription not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to delete subscription")
		WriteJSONError(w, "Failed to delete subscription", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListAttempts handles GET /subscriptions/{id}/attempts
func (h *SubscriptionHandler) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.status.SubscriptionAttempts(r.Context(), id, limit)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list delivery attempts")
		WriteJSONError(w, "Failed to list delivery attempts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
