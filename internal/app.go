package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	token_adapter "marketplace-service/internal/adapters/jwt"
	logger_adapter "marketplace-service/internal/adapters/logger"
	"marketplace-service/internal/adapters/memory"
	"marketplace-service/internal/adapters/metrics"
	postgres_adapter "marketplace-service/internal/adapters/postgres"
	rabbitmq_adapter "marketplace-service/internal/adapters/rabbitmq"
	"marketplace-service/internal/adapters/ratelimit"
	"marketplace-service/internal/adapters/render"
	"marketplace-service/internal/adapters/rest"
	"marketplace-service/internal/configs"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contracts"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/usecase"
	fluentlogger "marketplace-service/pkg/fluent_logger"
	"marketplace-service/pkg/postgres"
	"marketplace-service/pkg/rabbitmq/rabbitmq_common"
	"marketplace-service/pkg/rabbitmq/rabbitmq_producer"
	"marketplace-service/schemas"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

// storageSet groups the three storage ports so both drivers wire the same way.
type storageSet struct {
	listings port.ListingStoragePort
	catalog  port.CatalogRepositoryPort
	orders   port.OrderRepositoryPort
}

// App is the composition root of the service.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	connManager  *rabbitmq_common.ConnectionManager
	producer     *rabbitmq_producer.Publisher
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewApp builds every adapter and use case. On error everything opened so far is closed.
func NewApp() (app *App, err error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	a := &App{config: appConfig}
	defer func() {
		if err != nil {
			a.closeResources()
		}
	}()

	// --- loggers ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if appConfig.FluentBit.Enabled {
		a.fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(a.fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	a.logger = appLogger
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- storage ---
	storage, err := a.initStorage(appLogger)
	if err != nil {
		return nil, err
	}

	// --- outgoing adapters ---
	renderer, err := render.NewHTMLResultsRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create results renderer: %w", err)
	}

	var searchEvents port.SearchEventsPort = rabbitmq_adapter.NoopEventsAdapter{}
	var orderEvents port.OrderEventsPort = rabbitmq_adapter.NoopEventsAdapter{}
	if appConfig.RabbitMQ.Enabled {
		searchEvents, orderEvents, err = a.initEvents(baseLogger)
		if err != nil {
			appLogger.Error("Failed to initialize RabbitMQ event publishing", err, nil)
			return nil, err
		}
	} else {
		appLogger.Warn("RabbitMQ disabled, domain events will not be published", nil)
	}

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	limiter, err := a.initRateLimiter(appLogger)
	if err != nil {
		return nil, err
	}

	metricsManager := metrics.NewMetricsManager(strings.ReplaceAll(appConfig.AppName, "-", "_"))
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- use cases ---
	queryEngine, err := usecase.NewQueryEngine(storage.listings, appConfig.Search.QueryTimeout)
	if err != nil {
		return nil, err
	}
	facetCounter, err := usecase.NewFacetCounter(queryEngine, appConfig.Search.FacetConcurrency)
	if err != nil {
		return nil, err
	}
	searchListingsUseCase, err := usecase.NewSearchListingsUseCase(storage.catalog, queryEngine, facetCounter, renderer, searchEvents, metricsManager)
	if err != nil {
		return nil, err
	}
	getListingDetailsUseCase := usecase.NewGetListingDetailsUseCase(storage.listings)
	getCatalogUseCase := usecase.NewGetCatalogUseCase(storage.catalog)
	getBrandModelsUseCase := usecase.NewGetBrandModelsUseCase(storage.catalog)
	listOrdersUseCase := usecase.NewListOrdersUseCase(storage.orders)
	getOrderUseCase := usecase.NewGetOrderUseCase(storage.orders)
	updateOrderStatusUseCase, err := usecase.NewUpdateOrderStatusUseCase(storage.orders, orderEvents)
	if err != nil {
		return nil, err
	}
	appLogger.Info("All use cases initialized.", nil)

	// --- REST API ---
	a.apiServer = rest.NewServer(
		rest.ServerConfig{
			Port:               appConfig.Rest.Port,
			CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
			MetricsHandler:     metricsManager.Handler(),
		},
		rest.NewListingHandler(searchListingsUseCase, getListingDetailsUseCase),
		rest.NewCatalogHandler(getCatalogUseCase, getBrandModelsUseCase),
		rest.NewOrderHandler(listOrdersUseCase, getOrderUseCase, updateOrderStatusUseCase),
		rest.NewAuthMiddleware(tokenService),
		limiter,
		metricsManager,
		baseLogger,
	)
	appLogger.Info("REST API server configured.", nil)

	return a, nil
}

func (a *App) initStorage(appLogger port.LoggerPort) (*storageSet, error) {
	cfg := a.config.Storage

	if cfg.Driver == configs.StorageDriverMemory {
		store := memory.NewStore()
		if cfg.MemorySeedPath != "" {
			seeded, err := memory.LoadSeedFile(cfg.MemorySeedPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load memory seed: %w", err)
			}
			store = seeded
		}
		appLogger.Warn("Using in-memory storage, data is not persisted", port.Fields{"seed_path": cfg.MemorySeedPath})
		return &storageSet{listings: store, catalog: store, orders: store}, nil
	}

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    int32(cfg.MaxConns),
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	listingStorage, err := postgres_adapter.NewListingStorageAdapter(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres listing storage: %w", err)
	}
	catalogRepository, err := postgres_adapter.NewCatalogRepository(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres catalog repository: %w", err)
	}
	orderRepository, err := postgres_adapter.NewOrderRepository(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres order repository: %w", err)
	}
	appLogger.Info("Postgres storage adapters initialized.", nil)

	return &storageSet{listings: listingStorage, catalog: catalogRepository, orders: orderRepository}, nil
}

func (a *App) initEvents(baseLogger port.LoggerPort) (port.SearchEventsPort, port.OrderEventsPort, error) {
	cfg := a.config.RabbitMQ

	validator, err := contracts.NewEventValidator(schemas.SchemasFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile event schemas: %w", err)
	}

	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	a.connManager, err = rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: cfg.URL}, connManagerBridge)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	exchange := cfg.Exchange
	if exchange == "" {
		exchange = constants.DefaultEventsExchange
	}
	a.producer, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:    exchange,
		ExchangeType:    constants.EventsExchangeType,
		Durable:         true,
		DeclareExchange: true,
		Logger:          rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, a.connManager)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.logger.Info("RabbitMQ Event Producer initialized.", port.Fields{"exchange": exchange})

	orderEvents, err := rabbitmq_adapter.NewOrderEventsAdapter(a.producer, validator)
	if err != nil {
		return nil, nil, err
	}

	var searchEvents port.SearchEventsPort = rabbitmq_adapter.NoopEventsAdapter{}
	if cfg.SearchEventsEnabled {
		searchEvents, err = rabbitmq_adapter.NewSearchEventsAdapter(a.producer, validator)
		if err != nil {
			return nil, nil, err
		}
	}
	return searchEvents, orderEvents, nil
}

func (a *App) initRateLimiter(appLogger port.LoggerPort) (port.RateLimiterPort, error) {
	cfg := a.config.RateLimit

	if cfg.RedisURL == "" {
		appLogger.Info("Using in-process rate limiter", port.Fields{"requests": cfg.Requests, "window": cfg.Window.String()})
		return ratelimit.NewLocalLimiter(cfg.Requests, cfg.Window)
	}

	client, err := ratelimit.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		appLogger.Error("Failed to connect to Redis", err, nil)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.redisClient = client
	appLogger.Info("Using Redis rate limiter", port.Fields{"requests": cfg.Requests, "window": cfg.Window.String()})
	return ratelimit.NewRedisLimiter(client, cfg.Requests, cfg.Window)
}

// Run serves HTTP until a signal arrives or the server fails, then shuts down.
func (a *App) Run() error {
	defer a.closeResources()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

func (a *App) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logError("Error closing event producer", err)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logError("Error closing RabbitMQ connection", err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logError("Error closing Redis client", err)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		if a.logger != nil {
			a.logger.Info("PostgreSQL pool closed.", nil)
		}
	}
	if a.logger != nil {
		a.logger.Info("Application shut down gracefully.", nil)
	}
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent may already be gone, so stdout only
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func (a *App) logError(msg string, err error) {
	if a.logger != nil {
		a.logger.Error(msg, err, nil)
		return
	}
	log.Printf("%s: %v", msg, err)
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
