package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/remsins/webhook/config"
	"github.com/remsins/webhook/internal/cache"
	"github.com/remsins/webhook/internal/database"
	"github.com/remsins/webhook/internal/domain"
	httpHandler "github.com/remsins/webhook/internal/http"
	"github.com/remsins/webhook/internal/http/middleware"
	"github.com/remsins/webhook/internal/queue"
	"github.com/remsins/webhook/internal/repository"
	"github.com/remsins/webhook/internal/service"
	"github.com/remsins/webhook/pkg/logger"
)

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	redis  *redis.Client
	mux    *http.ServeMux
	server *http.Server

	// Repositories
	subscriptionRepo  domain.SubscriptionRepository
	deliveryLogRepo   domain.DeliveryLogRepository
	subscriptionCache domain.SubscriptionCache
	deliveryQueue     domain.DeliveryQueue

	// Services
	subscriptionService *service.SubscriptionService
	ingestService       *service.IngestService
	statusService       *service.StatusService
	deliveryWorker      *service.DeliveryWorker
	retentionService    *service.RetentionService
}

// AppOption allows customizing the app during creation
type AppOption func(*App)

// WithLogger sets a custom logger
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		logger: logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitDB initializes the database connection and schema
func (a *App) InitDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, a.config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.db = db
	a.logger.Info("Database connection established")
	return nil
}

// InitRedis initializes the Redis client shared by the cache and queue
func (a *App) InitRedis() error {
	opts, err := redis.ParseURL(a.config.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	a.redis = client
	a.logger.Info("Redis connection established")
	return nil
}

// InitRepositories initializes the repositories, cache and queue
func (a *App) InitRepositories() error {
	a.subscriptionRepo = repository.NewSubscriptionRepository(a.db)
	a.deliveryLogRepo = repository.NewDeliveryLogRepository(a.db)
	a.subscriptionCache = cache.NewSubscriptionCache(a.redis, a.subscriptionRepo, a.logger)
	a.deliveryQueue = queue.NewDeliveryQueue(a.redis, a.logger)
	return nil
}

// InitServices initializes the services
func (a *App) InitServices() error {
	a.subscriptionService = service.NewSubscriptionService(a.subscriptionRepo, a.subscriptionCache, a.logger)
	a.ingestService = service.NewIngestService(a.subscriptionCache, a.deliveryQueue, a.logger)
	a.statusService = service.NewStatusService(a.deliveryLogRepo)
	a.deliveryWorker = service.NewDeliveryWorker(
		a.subscriptionCache,
		a.deliveryLogRepo,
		a.deliveryQueue,
		a.logger,
		&http.Client{Timeout: a.config.Delivery.HTTPTimeout},
	)
	a.retentionService = service.NewRetentionService(
		a.deliveryLogRepo,
		a.logger,
		a.config.Retention.Period,
		a.config.Retention.PurgeInterval,
	)
	return nil
}

// InitHandlers initializes the HTTP handlers and registers the routes
func (a *App) InitHandlers() error {
	a.mux = http.NewServeMux()

	subscriptionHandler := httpHandler.NewSubscriptionHandler(a.subscriptionService, a.statusService, a.logger)
	ingestHandler := httpHandler.NewIngestHandler(a.ingestService, a.logger)
	statusHandler := httpHandler.NewStatusHandler(a.statusService, a.logger)
	rootHandler := httpHandler.NewRootHandler(a.deliveryQueue, a.db, a.redis, a.config.Version, a.logger)

	subscriptionHandler.RegisterRoutes(a.mux)
	ingestHandler.RegisterRoutes(a.mux)
	statusHandler.RegisterRoutes(a.mux)
	rootHandler.RegisterRoutes(a.mux)

	return nil
}

// Initialize initializes all application components in order
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting webhook delivery service")

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitRedis(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Start starts the HTTP server and blocks until it stops
func (a *App) Start() error {
	var handler http.Handler = a.mux
	handler = middleware.LoggingMiddleware(a.logger)(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info("Server starting")

	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// DeliveryWorker returns the delivery worker for the worker binary
func (a *App) DeliveryWorker() *service.DeliveryWorker {
	return a.deliveryWorker
}

// RetentionService returns the retention service for the worker binary
func (a *App) RetentionService() *service.RetentionService {
	return a.retentionService
}

// Logger returns the app's logger
func (a *App) Logger() logger.Logger {
	return a.logger
}

// Mux returns the app's HTTP multiplexer
func (a *App) Mux() *http.ServeMux {
	return a.mux
}

// Shutdown gracefully shuts down the server and closes connections
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown")

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.WithField("error", err.Error()).Error("HTTP server shutdown failed")
		}
	}

	return a.Close()
}

// Close releases the database and Redis connections
func (a *App) Close() error {
	var firstErr error

	if a.redis != nil {
		if err := a.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	a.logger.Info("Shutdown complete")
	return firstErr
}
