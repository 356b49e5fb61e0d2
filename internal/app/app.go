package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/agroclimatic/bulletins/config"
	"github.com/agroclimatic/bulletins/internal/database"
	"github.com/agroclimatic/bulletins/internal/domain"
	httpHandler "github.com/agroclimatic/bulletins/internal/http"
	"github.com/agroclimatic/bulletins/internal/http/middleware"
	"github.com/agroclimatic/bulletins/internal/repository"
	"github.com/agroclimatic/bulletins/internal/service"
	"github.com/agroclimatic/bulletins/pkg/cache"
	"github.com/agroclimatic/bulletins/pkg/logger"
	"github.com/agroclimatic/bulletins/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB

	GetTemplateRepository() domain.TemplateRepository
	GetCardRepository() domain.CardRepository
	GetVisualResourceRepository() domain.VisualResourceRepository

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitDB() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

type contextKey string

// ShutdownContextKey holds the app shutdown context in request contexts
const ShutdownContextKey contextKey = "shutdown_ctx"

// App wires configuration, storage, services and handlers of the API
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	templateRepo       domain.TemplateRepository
	cardRepo           domain.CardRepository
	visualResourceRepo domain.VisualResourceRepository

	// cardCache is shared by the card service, which evicts, and the
	// preview service, which reads
	cardCache cache.Cache[*domain.Card]

	templateService       *service.TemplateService
	cardService           *service.CardService
	visualResourceService *service.VisualResourceService
	previewService        *service.PreviewService

	mux    *http.ServeMux
	server *http.Server

	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func (a *App) InitTracing() error {
	if err := tracing.InitTracing(&a.config.Tracing, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if a.config.Tracing.Enabled {
		a.logger.WithField("sampling_rate", a.config.Tracing.SamplingProbability).Info("Tracing initialized successfully")
	}
	return nil
}

// InitDB connects to PostgreSQL. A database injected with WithMockDB is kept.
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	cfg := &a.config.Database
	a.logger.WithFields(map[string]interface{}{
		"host":    cfg.Host,
		"port":    cfg.Port,
		"user":    cfg.User,
		"dbname":  cfg.DBName,
		"sslmode": cfg.SSLMode,
	}).Info("Connecting to database")

	db, err := database.Connect(cfg, a.config.Tracing.Enabled)
	if err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	a.db = db
	return nil
}

func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.templateRepo = repository.NewTemplateRepository(a.db)
	a.cardRepo = repository.NewCardRepository(a.db)
	a.visualResourceRepo = repository.NewVisualResourceRepository(a.db)

	return nil
}

func (a *App) InitServices() error {
	if a.templateRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	cleanup := a.config.Render.CardCacheTTL
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	a.cardCache = cache.NewInMemoryCache[*domain.Card](cleanup)

	a.templateService = service.NewTemplateService(a.templateRepo, a.logger)
	a.cardService = service.NewCardService(a.cardRepo, a.cardCache, a.logger)
	a.visualResourceService = service.NewVisualResourceService(a.visualResourceRepo, a.logger)
	a.previewService = service.NewPreviewService(a.templateRepo, a.cardRepo, a.cardCache, a.config.Render, a.logger)

	return nil
}

func (a *App) InitHandlers() error {
	// a fresh mux avoids duplicate route panics on restart
	a.mux = http.NewServeMux()

	var pinger httpHandler.Pinger
	if a.db != nil {
		pinger = a.db
	}

	httpHandler.NewHealthHandler(pinger, a.config.Version).RegisterRoutes(a.mux)
	httpHandler.NewTemplateHandler(a.templateService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewCardHandler(a.cardService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewVisualResourceHandler(a.visualResourceService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewBulletinHandler(a.previewService, a.logger).RegisterRoutes(a.mux)

	return nil
}

// Handler returns the mux wrapped in the request middlewares
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	return middleware.CORSMiddleware(handler)
}

func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("api_endpoint", a.config.APIEndpoint).
		Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverStarted := a.serverStarted
	server := a.server
	a.serverMu.Unlock()

	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until the
// timeout and releases the database and the card cache.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = max(remaining-time.Second, 0)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	serverShutdownDone := make(chan error, 1)
	go func() {
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	var shutdownErr error
	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	if shutdownErr == nil {
		select {
		case <-requestsDone:
		case <-time.After(2 * time.Second):
			if active := a.getActiveRequestCount(); active > 0 {
				a.logger.WithField("active_requests", active).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	if err := a.cleanupResources(); err != nil {
		a.logger.WithField("error", err).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.cardCache != nil {
		a.logger.WithField("cached_cards", a.cardCache.Size()).Info("Stopping card cache")
		a.cardCache.Stop()
	}

	if a.db != nil {
		if a.config.Tracing.Enabled {
			if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
				a.logger.WithField("error", err).Error("Failed to record final database stats for tracing")
			}
		}

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart returns true once the server is created, false if ctx
// expires first
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting bulletins API")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetTemplateRepository() domain.TemplateRepository {
	return a.templateRepo
}

func (a *App) GetCardRepository() domain.CardRepository {
	return a.cardRepo
}

func (a *App) GetVisualResourceRepository() domain.VisualResourceRepository {
	return a.visualResourceRepo
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks active requests and refuses new ones
// once shutdown has started
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		ctx := context.WithValue(r.Context(), ShutdownContextKey, a.shutdownCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var _ AppInterface = (*App)(nil)
