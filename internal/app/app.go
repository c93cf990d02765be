package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/adapter/http"
	"github.com/pitstop/oficina-api/internal/app/auth"
	"github.com/pitstop/oficina-api/internal/app/client"
	"github.com/pitstop/oficina-api/internal/app/dashboard"
	"github.com/pitstop/oficina-api/internal/app/order"
	"github.com/pitstop/oficina-api/internal/app/part"
	"github.com/pitstop/oficina-api/internal/app/servicecatalog"
	"github.com/pitstop/oficina-api/internal/app/vehicle"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/internal/infra/metrics"
	"github.com/pitstop/oficina-api/internal/infra/middleware"
	"github.com/pitstop/oficina-api/pkg/config"
	"github.com/pitstop/oficina-api/pkg/security"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App agrupa todas as dependências da aplicação já injetadas
type App struct {
	Logger     *zap.Logger
	Config     *config.Config
	DB         *database.Database
	Middleware *middleware.Middleware
	APIMetrics *metrics.APIMetrics

	healthHandler    *http.HealthHandler
	authHandler      *http.AuthHandler
	clientHandler    *http.ClientHandler
	vehicleHandler   *http.VehicleHandler
	partHandler      *http.PartHandler
	serviceHandler   *http.ServiceHandler
	orderHandler     *http.OrderHandler
	dashboardHandler *http.DashboardHandler
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		SlowThreshold:   cfg.Database.SlowThreshold,
		SkipMigrations:  cfg.Database.SkipMigrations,
	}

	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar banco de dados: %w", err)
	}

	apiMetrics := metrics.NewAPIMetrics()

	keyManager, err := security.NewKeyManager(security.GetJWTSecret(cfg), logger)
	if err != nil {
		return nil, err
	}

	// Repositórios
	userRepo := database.NewUserRepository(db.DB())
	clientRepo := database.NewClientRepository(db.DB())
	vehicleRepo := database.NewVehicleRepository(db.DB())
	partRepo := database.NewPartRepository(db.DB())
	serviceRepo := database.NewServiceRepository(db.DB())
	orderRepo := database.NewOrderRepository(db.DB())
	dashboardRepo := database.NewDashboardRepository(db.DB())

	// Serviços
	authService := auth.NewService(keyManager, userRepo, cfg.Auth.TokenExpiration, logger)
	clientService := client.NewService(clientRepo, logger)
	vehicleService := vehicle.NewService(vehicleRepo, logger)
	partService := part.NewService(partRepo, logger)
	catalogService := servicecatalog.NewService(serviceRepo, logger)
	orderService := order.NewService(orderRepo, clientRepo, vehicleRepo, logger)
	dashboardService := dashboard.NewService(dashboardRepo, logger)

	middlewares := middleware.NewMiddleware(logger, keyManager, apiMetrics, cfg)

	return &App{
		Logger:     logger,
		Config:     cfg,
		DB:         db,
		Middleware: middlewares,
		APIMetrics: apiMetrics,

		healthHandler:    http.NewHealthHandler(db, logger),
		authHandler:      http.NewAuthHandler(authService, logger),
		clientHandler:    http.NewClientHandler(clientService, vehicleService, orderService, logger),
		vehicleHandler:   http.NewVehicleHandler(vehicleService, logger),
		partHandler:      http.NewPartHandler(partService, logger),
		serviceHandler:   http.NewServiceHandler(catalogService, logger),
		orderHandler:     http.NewOrderHandler(orderService, logger),
		dashboardHandler: http.NewDashboardHandler(dashboardService, logger),
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.Metrics())
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}

	admin := a.Middleware.Authorize(model.RoleAdmin)
	anyUser := a.Middleware.Authorize(model.RoleAdmin, model.RoleClient)

	// Rotas públicas
	router.GET("/", a.healthHandler.Root)
	router.GET("/health", a.healthHandler.HealthCheck)
	router.GET("/health/liveness", a.healthHandler.HealthCheck)
	if a.Config.Metrics.Enabled {
		router.GET(a.Config.Metrics.PrometheusPath, gin.WrapH(promhttp.Handler()))
		a.Logger.Info("Endpoint de métricas Prometheus registrado",
			zap.String("path", a.Config.Metrics.PrometheusPath))
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", a.authHandler.Signup)
		authGroup.POST("/login", a.authHandler.Login)
		authGroup.GET("/me", anyUser, a.authHandler.Me)
	}
	router.GET("/users/me", anyUser, a.authHandler.Me)
	router.GET("/me", anyUser, a.authHandler.Me)

	clientes := router.Group("/clientes")
	{
		clientes.GET("", admin, a.clientHandler.List)
		clientes.POST("", anyUser, a.clientHandler.Create)
		clientes.GET("/:id", anyUser, a.clientHandler.GetByID)
		clientes.PUT("/:id", admin, a.clientHandler.Update)
		clientes.DELETE("/:id", admin, a.clientHandler.Delete)
		clientes.GET("/:id/veiculos", anyUser, a.clientHandler.ListVehicles)
		clientes.GET("/:id/ordens", anyUser, a.clientHandler.ListOrders)
	}

	veiculos := router.Group("/veiculos")
	{
		veiculos.GET("", a.vehicleHandler.List)
		veiculos.GET("/:id", a.vehicleHandler.GetByID)
		veiculos.POST("", admin, a.vehicleHandler.Create)
		veiculos.PUT("/:id", admin, a.vehicleHandler.Update)
		veiculos.DELETE("/:id", admin, a.vehicleHandler.Delete)
	}

	pecas := router.Group("/pecas")
	{
		pecas.GET("", a.partHandler.List)
		pecas.GET("/:id", a.partHandler.GetByID)
		pecas.POST("", admin, a.partHandler.Create)
		pecas.PUT("/:id", admin, a.partHandler.Update)
		pecas.DELETE("/:id", admin, a.partHandler.Delete)
	}

	servicos := router.Group("/servicos")
	{
		servicos.GET("", a.serviceHandler.List)
		servicos.GET("/:id", a.serviceHandler.GetByID)
		servicos.POST("", admin, a.serviceHandler.Create)
		servicos.PUT("/:id", admin, a.serviceHandler.Update)
		servicos.DELETE("/:id", admin, a.serviceHandler.Delete)
	}

	ordens := router.Group("/ordens")
	{
		ordens.GET("", admin, a.orderHandler.List)
		ordens.POST("", anyUser, a.orderHandler.Create)
		ordens.GET("/:id", anyUser, a.orderHandler.GetByID)
		ordens.PUT("/:id", admin, a.orderHandler.Update)
		ordens.DELETE("/:id", admin, a.orderHandler.Delete)
		ordens.PATCH("/:id/status", admin, a.orderHandler.UpdateStatus)
		ordens.POST("/:id/pecas", admin, a.orderHandler.AddPart)
		ordens.DELETE("/:id/pecas/:usageId", admin, a.orderHandler.RemovePart)
		ordens.POST("/:id/servicos", admin, a.orderHandler.AddService)
		ordens.DELETE("/:id/servicos/:usageId", admin, a.orderHandler.RemoveService)
	}

	router.GET("/dashboard", admin, a.dashboardHandler.GetMetrics)
}

// Shutdown libera os recursos da aplicação
func (a *App) Shutdown() error {
	return a.DB.Close()
}
