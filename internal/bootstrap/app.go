package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/locvowork/hrms_gateway/internal/client"
	"github.com/locvowork/hrms_gateway/internal/config"
	"github.com/locvowork/hrms_gateway/internal/credential"
	"github.com/locvowork/hrms_gateway/internal/database"
	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/handler"
	"github.com/locvowork/hrms_gateway/internal/logger"
	hrmsmw "github.com/locvowork/hrms_gateway/internal/middleware"
	"github.com/locvowork/hrms_gateway/internal/service"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

type App struct {
	Echo     *echo.Echo
	Config   *config.EnvConfig
	Clients  *client.Clients
	Services *service.Services
	Registry *prometheus.Registry

	closers []func() error
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{
		Echo:     e,
		Registry: prometheus.NewRegistry(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig
	a.Config = cfg

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	return a.open(ctx, cfg)
}

// open connects the credential store and archive index, then wires them.
// Whatever was opened is closed again if a later step fails.
func (a *App) open(ctx context.Context, cfg *config.EnvConfig) (err error) {
	defer func() {
		if err != nil {
			a.release(ctx)
		}
	}()

	store, closeStore, err := OpenCredentialStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	a.closers = append(a.closers, closeStore)
	logger.InfoLog(ctx, "Using %s credential store", cfg.CREDENTIAL_STORE)

	index, err := database.NewElasticSearchClient(cfg.ELASTIC_URL, cfg.AUDIT_ARCHIVE_INDEX)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() error { index.Close(); return nil })

	return a.Wire(cfg, store, index)
}

// Wire builds clients, services, handlers and routes from already opened
// dependencies. Callers' bearer tokens take precedence over the stored one.
func (a *App) Wire(cfg *config.EnvConfig, store credential.Store, index domain.AuditIndex) error {
	a.Config = cfg
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := transport.NewMetrics(a.Registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	provider := credential.ContextProvider(credential.StoreProvider(store))
	clients, err := client.New(cfg.Endpoints, provider,
		transport.WithTimeout(cfg.HTTP_TIMEOUT),
		transport.WithObserver(transport.LogObserver(), metrics.Observer()),
	)
	if err != nil {
		return fmt.Errorf("failed to build clients: %w", err)
	}
	a.Clients = clients
	a.Services = service.NewServices(clients, cfg.EXPORT_PAGE_SIZE, cfg.EXPORT_WORKERS)
	archive := service.NewArchiveService(a.Services.Audit, index, cfg.EXPORT_PAGE_SIZE)

	backends := make(map[string]string, len(domain.Domains()))
	for _, d := range domain.Domains() {
		backends[string(d)], _ = cfg.Endpoints.For(d)
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes(
		handler.NewOverviewHandler(a.Services.Overview),
		handler.NewExportHandler(a.Services.Export),
		handler.NewArchiveHandler(archive),
		handler.NewHealthHandler(backends),
	)
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(hrmsmw.RequestID())
	a.Echo.Use(hrmsmw.ForwardBearer())
}

func (a *App) RegisterRoutes(
	overview *handler.OverviewHandler,
	export *handler.ExportHandler,
	archive *handler.ArchiveHandler,
	health *handler.HealthHandler,
) {
	a.Echo.GET("/health", health.GetHandler)
	a.Echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))

	api := a.Echo.Group("/api/v1")
	api.GET("/employees/:id/overview", overview.GetHandler)

	exportGroup := api.Group("/exports")
	exportGroup.GET("/employees", export.EmployeesHandler)
	exportGroup.GET("/audit-logs", export.AuditLogsHandler)

	api.POST("/archive/audit-logs", archive.AuditLogsHandler)
}

func (a *App) Run() error {
	err := a.Echo.Start(":" + a.Config.APP_PORT)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server and releases stores and clients.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	a.release(ctx)
	return err
}

// release runs the closers in reverse opening order.
func (a *App) release(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if cerr := a.closers[i](); cerr != nil {
			logger.ErrorLog(ctx, "close: %v", cerr)
		}
	}
	a.closers = nil
}
