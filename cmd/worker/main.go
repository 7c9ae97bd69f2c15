package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fahari-app/inventory-service/config"
	"github.com/fahari-app/inventory-service/internal/inventory"
	invListenerPkg "github.com/fahari-app/inventory-service/internal/inventory/listener"
	invRepoPkg "github.com/fahari-app/inventory-service/internal/inventory/repository"
	invUCPkg "github.com/fahari-app/inventory-service/internal/inventory/usecase"
	"github.com/fahari-app/inventory-service/pkg/broker"
	"github.com/fahari-app/inventory-service/pkg/cache"
	"github.com/fahari-app/inventory-service/pkg/database/postgres"
	"github.com/fahari-app/inventory-service/pkg/i18n"
	"github.com/fahari-app/inventory-service/pkg/logger"
	"github.com/fahari-app/inventory-service/pkg/search"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load() // .env is optional
	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// 2. Initialize i18n
	i18n.Init()
	if err := i18n.Load("locales/active.en.json"); err != nil {
		log.Printf("Failed to load en locales: %v", err)
	}
	if err := i18n.Load("locales/active.sw.json"); err != nil {
		log.Printf("Failed to load sw locales: %v", err)
	}

	// 3. Initialize logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 4. Connect to the database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetimeDuration(),
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTimeDuration(),
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 7. Initialize Elasticsearch; search degrades to the database when
	// the cluster is unreachable.
	var searcher *search.Client
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, variant search falls back to the database", zap.Error(err))
	} else {
		searcher = esClient
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Wire the ledger
	invRepo := invRepoPkg.NewPGRepository(db)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, searcherOrNil(searcher), cfg.Inventory.AlarmQuantity, appLogger)

	// 9. Start the sale listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stockListener := invListenerPkg.NewStockListener(kafkaConsumer, invUC, appLogger)
	go stockListener.Start(ctx)

	appLogger.Info("Inventory worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	cancel()
	appLogger.Info("Worker stopped")
}

// searcherOrNil keeps the usecase's Searcher interface nil when no
// client was built; a typed nil *search.Client would defeat the
// usecase's nil checks.
func searcherOrNil(c *search.Client) inventory.Searcher {
	if c == nil {
		return nil
	}
	return c
}
