package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/gesstock-service/config"
	"github.com/fekuna/gesstock-service/internal/pkg/broker"
	"github.com/fekuna/gesstock-service/internal/pkg/cache"
	"github.com/fekuna/gesstock-service/internal/pkg/database/postgres"
	"github.com/fekuna/gesstock-service/internal/pkg/grpcserver"
	"github.com/fekuna/gesstock-service/internal/pkg/i18n"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/pkg/response"
	"github.com/fekuna/gesstock-service/internal/route"
	"github.com/fekuna/gesstock-service/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/fekuna/gesstock-service/internal/category"
	catH "github.com/fekuna/gesstock-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/gesstock-service/internal/category/repository"
	catUCPkg "github.com/fekuna/gesstock-service/internal/category/usecase"

	"github.com/fekuna/gesstock-service/internal/inventory"
	invH "github.com/fekuna/gesstock-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/gesstock-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/gesstock-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/gesstock-service/internal/inventory/usecase"

	"github.com/fekuna/gesstock-service/internal/product"
	prodH "github.com/fekuna/gesstock-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/gesstock-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/gesstock-service/internal/product/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type repositories struct {
	category  category.Repository
	product   product.Repository
	inventory inventory.Repository
	health    route.HealthFunc
	close     func()
}

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
	} else {
		logConfig.Encoding = "json"
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	// 3. Initialize i18n
	translator, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		appLogger.Fatal("Could not load translations", zap.Error(err))
	}

	// 4. Initialize Repositories
	repos, err := openRepositories(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer repos.close()
	appLogger.Info("Storage ready", zap.String("driver", cfg.Storage.Driver))

	// 5. Initialize Kafka
	var publisher broker.Publisher = broker.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = broker.NewPublisher(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		})
		appLogger.Info("Kafka publisher ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.EventsTopic))
	}
	// CRUD events leave the request path; Close drains them and closes publisher.
	events := broker.NewAsyncPublisher(publisher, 5*time.Second, appLogger)

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(repos.category, events, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(repos.product, events, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(repos.inventory, prodUC, publisher, appLogger)

	// 7. Start Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ScanTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("Kafka consumer ready", zap.String("topic", cfg.Kafka.ScanTopic))

		go invListenerPkg.NewScanListener(consumer, invUC, appLogger).Start(ctx)
	}

	// 8. Initialize Handlers
	resp := response.NewResponder(translator, appLogger)
	router := route.InitRoutes(appLogger, repos.health,
		catH.NewCategoryHandler(catUC, resp, appLogger),
		prodH.NewProductHandler(prodUC, resp, appLogger),
		invH.NewInventoryHandler(invUC, resp, appLogger),
	)

	// 9. Start Servers
	httpServer := &http.Server{
		Addr:         normalizePort(cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	healthServer := grpcserver.New(normalizePort(cfg.Server.GRPCPort))
	healthServer.SetServing(true)
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("addr", cfg.Server.GRPCPort))
		if err := healthServer.Start(); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.SetServing(false)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	healthServer.Stop()
	if err := events.Close(); err != nil {
		appLogger.Error("event publisher close failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func openRepositories(cfg *config.Config, log logger.ZapLogger) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.AutoSchema {
			if err := postgres.EnsureSchema(context.Background(), db); err != nil {
				db.Close()
				return nil, err
			}
		}
		return pgRepositories(db), nil

	case config.DriverRedis:
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		locker := store.NewRedisLocker(redisClient, store.RedisLockerConfig{
			TTL:        cfg.Redis.LockTTL,
			Attempts:   cfg.Redis.LockAttempts,
			RetryDelay: cfg.Redis.LockRetryWait,
		}, log)
		s := store.New(store.NewRedisBackend(redisClient), locker, log)
		repos := documentRepositories(s, log)
		repos.health = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx)
		}
		return repos, nil

	default:
		log.Warn("Using in-memory storage; data is lost on restart")
		return documentRepositories(store.New(store.NewMemoryBackend(), store.NewKeyedMutex(), log), log), nil
	}
}

func documentRepositories(s *store.Store, log logger.ZapLogger) *repositories {
	return &repositories{
		category:  catRepoPkg.NewDocumentRepository(s, log),
		product:   prodRepoPkg.NewDocumentRepository(s, log),
		inventory: invRepoPkg.NewDocumentRepository(s, log),
		close:     func() { _ = s.Close() },
	}
}

func pgRepositories(db *sqlx.DB) *repositories {
	return &repositories{
		category:  catRepoPkg.NewPGRepository(db),
		product:   prodRepoPkg.NewPGRepository(db),
		inventory: invRepoPkg.NewPGRepository(db),
		health: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.PingContext(ctx)
		},
		close: func() { _ = db.Close() },
	}
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
