package http

import (
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

// RootHandler serves the service banner and the health endpoint.
type RootHandler struct {
	queue   domain.DeliveryQueue
	db      *sql.DB
	redis   *redis.Client
	version string
	logger  logger.Logger
}

// NewRootHandler creates a new root handler
func NewRootHandler(queue domain.DeliveryQueue, db *sql.DB, redisClient *redis.Client, version string, logger logger.Logger) *RootHandler {
	return &RootHandler{
		queue:   queue,
		db:      db,
		redis:   redisClient,
		version: version,
		logger:  logger,
	}
}

// RegisterRoutes registers the root routes
func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /health", h.handleHealth)
}

// handleRoot handles GET /
func (h *RootHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "webhook-delivery",
		"version": h.version,
	})
}

// handleHealth handles GET /health. It pings both backing stores and
// reports the ready queue depth; any failing dependency yields a 503.
func (h *RootHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	healthy := true

	dbStatus := "ok"
	if err := h.db.PingContext(ctx); err != nil {
		healthy = false
		dbStatus = err.Error()
	}

	redisStatus := "ok"
	if err := h.redis.Ping(ctx).Err(); err != nil {
		healthy = false
		redisStatus = err.Error()
	}

	var queueDepth int64
	if healthy {
		depth, err := h.queue.CountReady(ctx)
		if err != nil {
			healthy = false
			redisStatus = err.Error()
		}
		queueDepth = depth
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		h.logger.WithFields(map[string]interface{}{
			"database": dbStatus,
			"redis":    redisStatus,
		}).Warn("Health check failed")
	}

	writeJSON(w, status, map[string]interface{}{
		"database":    dbStatus,
		"redis":       redisStatus,
		"queue_depth": queueDepth,
	})
}
