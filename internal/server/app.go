// Package server wires configuration, storage, services and transports
// together and runs the HTTP API and the gRPC health endpoint until the
// process is told to stop.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/webedt/webedt/internal/logging"
	"github.com/webedt/webedt/internal/server/config"
	"github.com/webedt/webedt/internal/server/httpapi"
	"github.com/webedt/webedt/internal/server/services"
	"github.com/webedt/webedt/internal/server/storage"
	"github.com/webedt/webedt/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	gs "github.com/webedt/webedt/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	storage     *storage.Adapter
	authService *services.AuthService
	handler     *httpapi.Handler
}

// NewApp opens storage and builds the services. Storage problems never
// fail startup; the adapter comes up on memory instead.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) *App {
	if logger == nil {
		level, _ := logging.ParseLevel(c.LogLevel)
		logger = logging.NewJSONLogger(os.Stdout, level)
	}

	st := storage.Open(ctx, c.DatabaseDSN, logger)

	as := services.NewAuthService(st, c, logger)
	us := services.NewUserService(st)
	ss := services.NewSessionService(st)

	h := httpapi.NewHandler(as, us, ss, st, []byte(c.SecretKey), c.ServiceName, logger)

	return &App{config: c, logger: logger, storage: st, authService: as, handler: h}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	server := &http.Server{
		Addr:         app.config.HTTPAddr,
		Handler:      otelhttp.NewHandler(httpapi.LoggingMiddleware(app.logger, app.handler.Routes()), app.config.ServiceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.GRPCAddr, app.logger, app.storage)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives, or a
// listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.storage.Mode().String())
	app.initSignalHandler(cancelFunc)

	if app.config.UsesDefaultSecret() {
		app.logger.Warn(ctx, "JWT secret is the built-in default; set JWT_SECRET in production")
	}

	shutdownTelemetry := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: app.config.ServiceName,
		Endpoint:    app.config.OTLPEndpoint,
		Insecure:    app.config.OTLPInsecure,
	}, app.logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(shutdownCtx)
	}()

	if _, err := app.authService.BootstrapDefaultAdmin(ctx); err != nil {
		app.logger.Error(ctx, "default admin bootstrap failed", "error", err)
	}

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.storage.Watch(ctx, app.config.StoragePingInterval)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
