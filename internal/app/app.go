package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Notifuse/emailcomposer/config"
	"github.com/Notifuse/emailcomposer/internal/domain"
	httpHandler "github.com/Notifuse/emailcomposer/internal/http"
	"github.com/Notifuse/emailcomposer/internal/http/middleware"
	"github.com/Notifuse/emailcomposer/internal/service"
	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/Notifuse/emailcomposer/pkg/logger"
	"github.com/Notifuse/emailcomposer/pkg/storage"
	"github.com/Notifuse/emailcomposer/pkg/tracing"
)

// uploadKeyPrefix groups uploaded images under one folder of the storage backend
const uploadKeyPrefix = "images"

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetSession() *domain.Session
	GetFileStorage() storage.FileStorage

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitTracing() error
	InitStorage() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config      *config.Config
	logger      logger.Logger
	session     *domain.Session
	fileStorage storage.FileStorage

	// Services
	layoutSource    domain.LayoutSource
	editorService   *service.EditorService
	renderService   *service.RenderService
	uploadService   *service.UploadService
	snapshotService *service.SnapshotService

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64          // atomic counter for active HTTP requests
	requestWg       sync.WaitGroup // wait group for active requests
	shutdownTimeout time.Duration  // configurable shutdown timeout
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithFileStorage replaces the configured upload storage backend
func WithFileStorage(fileStorage storage.FileStorage) AppOption {
	return func(a *App) {
		a.fileStorage = fileStorage
	}
}

// WithSession starts the app on an existing editing session
func WithSession(session *domain.Session) AppOption {
	return func(a *App) {
		a.session = session
	}
}

// NewApp creates a new application instance
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

	if app.session == nil {
		app.session = domain.NewSession()
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitStorage sets up the upload backend selected by STORAGE_DRIVER
func (a *App) InitStorage() error {
	if a.fileStorage != nil {
		return nil
	}

	storageConfig := a.config.Storage

	switch storageConfig.Driver {
	case "s3":
		s3Storage, err := storage.NewS3Storage(storage.S3Config{
			Bucket:         storageConfig.S3.Bucket,
			Region:         storageConfig.S3.Region,
			Endpoint:       storageConfig.S3.Endpoint,
			AccessKey:      storageConfig.S3.AccessKey,
			SecretKey:      storageConfig.S3.SecretKey,
			PublicURL:      storageConfig.S3.PublicURL,
			ForcePathStyle: storageConfig.S3.ForcePathStyle,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		a.fileStorage = s3Storage
		a.logger.WithField("bucket", storageConfig.S3.Bucket).Info("Using S3 upload storage")
	default:
		localStorage, err := storage.NewLocalStorage(storageConfig.UploadDir, storageConfig.UploadBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		a.fileStorage = localStorage
		a.logger.WithField("upload_dir", localStorage.BaseDir()).Info("Using local upload storage")
	}

	return nil
}

// InitServices builds the services around the editing session. The layout is
// loaded here so a malformed one stops the server at startup.
func (a *App) InitServices() error {
	renderConfig := a.config.Render

	layoutSource := service.NewFileLayoutSource(renderConfig.LayoutPath, renderConfig.LayoutFormat, a.logger)
	if _, err := layoutSource.Layout(context.Background()); err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	a.layoutSource = layoutSource

	var liquidOpts []emailtemplate.LiquidOption
	if renderConfig.Timeout > 0 {
		liquidOpts = append(liquidOpts, emailtemplate.WithRenderTimeout(renderConfig.Timeout))
	}
	if renderConfig.MaxTemplateSize > 0 {
		liquidOpts = append(liquidOpts, emailtemplate.WithMaxTemplateSize(renderConfig.MaxTemplateSize))
	}

	renderOpts := []service.RenderServiceOption{
		service.WithRenderer(emailtemplate.NewLiquidRenderer(liquidOpts...)),
	}
	if renderConfig.MaxConcurrent > 0 {
		renderOpts = append(renderOpts, service.WithMaxConcurrentRenders(renderConfig.MaxConcurrent))
	}

	a.editorService = service.NewEditorService(a.session, layoutSource, a.logger)
	a.renderService = service.NewRenderService(layoutSource, a.logger, renderOpts...)
	a.uploadService = service.NewUploadService(a.session, a.fileStorage, a.config.Storage.MaxUploadSize, uploadKeyPrefix, a.logger)
	a.snapshotService = service.NewSnapshotService(a.logger)

	return nil
}

// InitHandlers registers every route on a fresh mux
func (a *App) InitHandlers() error {
	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	uploadDir := ""
	if local, ok := a.fileStorage.(*storage.LocalStorage); ok {
		uploadDir = local.BaseDir()
	}

	rootHandler := httpHandler.NewRootHandler(
		a.config.ConsoleDir,
		uploadDir,
		uploadRoute(a.config.Storage.UploadBaseURL),
		a.logger,
		a.config.APIEndpoint,
		a.config.Version,
	)
	editorHandler := httpHandler.NewEditorHandler(a.editorService, a.snapshotService, a.logger)
	renderHandler := httpHandler.NewRenderHandler(a.renderService, a.editorService, a.logger)
	layoutHandler := httpHandler.NewLayoutHandler(a.layoutSource, a.logger)
	uploadHandler := httpHandler.NewUploadHandler(a.uploadService, a.uploadService.MaxSize(), a.config.APIEndpoint, a.logger)

	rootHandler.RegisterRoutes(a.mux)
	editorHandler.RegisterRoutes(a.mux)
	renderHandler.RegisterRoutes(a.mux)
	layoutHandler.RegisterRoutes(a.mux)
	uploadHandler.RegisterRoutes(a.mux)

	return nil
}

// uploadRoute returns the path local uploads are served under, which is the
// path component of UPLOAD_BASE_URL
func uploadRoute(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "/uploads/"
	}
	return parsed.Path
}

// handler wraps the mux with the middleware chain
func (a *App) handler() http.Handler {
	var handler http.Handler = a.mux

	// Apply graceful shutdown middleware first (outermost)
	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	return middleware.CORSMiddleware(a.config.Server.CORSAllowOrigin)(handler)
}

// Start starts the HTTP server
func (a *App) Start() error {
	if a.isShuttingDown() {
		return http.ErrServerClosed
	}

	handler := a.handler()

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
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	server := a.server
	a.serverMu.Unlock()

	// Signal that the server has been created and is about to start
	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	// Signal shutdown to all components
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
		// Use the provided context deadline if it's sooner than our default timeout
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// server.Shutdown waits for in-flight handlers, the wait group covers
	// handlers still running after their connection was closed
	shutdownErr := server.Shutdown(shutdownCtx)

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
		a.logger.Info("All requests completed")
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
		if shutdownErr == nil {
			shutdownErr = fmt.Errorf("shutdown timeout exceeded")
		}
	}

	if cleanupErr := a.cleanupResources(); cleanupErr != nil && shutdownErr == nil {
		shutdownErr = cleanupErr
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

// cleanupResources logs the final session state. The composition lives in
// memory only, so this is its last trace.
func (a *App) cleanupResources() error {
	a.logger.WithField("revision", a.session.Revision()).
		WithField("sections", len(a.session.Snapshot().Sections)).
		Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created and initialized
// Returns true if the server started successfully, false if context expired
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting email composer")

	if err := a.InitTracing(); err != nil {
		return err
	}

	if err := a.InitStorage(); err != nil {
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

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetSession returns the editing session shared by the services
func (a *App) GetSession() *domain.Session {
	return a.session
}

// GetFileStorage returns the upload backend
func (a *App) GetFileStorage() storage.FileStorage {
	return a.fileStorage
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

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the shutdown context for components that need to watch for shutdown
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

// gracefulShutdownMiddleware rejects new requests once shutdown started and
// tracks the ones in flight
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
