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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/catalog"
	"github.com/imanol-10/kmanager/internal/catalog/cache"
	"github.com/imanol-10/kmanager/internal/checkout"
	"github.com/imanol-10/kmanager/internal/client"
	"github.com/imanol-10/kmanager/internal/events"
	"github.com/imanol-10/kmanager/internal/logging"
	"github.com/imanol-10/kmanager/internal/server"
)

type Config struct {
	HTTPPort        string
	StoreAPIURL     string
	RedisAddr       string // optional, in-memory snapshot cache when empty
	KafkaBrokers    []string
	KafkaTopic      string
	Environment     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StoreAPIURL:     getEnv("STORE_API_URL", "http://localhost:8081/api"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "sale-receipts"),
		Environment:     getEnv("APP_ENV", "production"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	log, err := logging.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	store := client.New(cfg.StoreAPIURL, cfg.RequestTimeout)

	var snapshots cache.SnapshotCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		snapshots = cache.NewRedisCache(redisClient)
		log.Info("using redis snapshot cache", zap.String("addr", cfg.RedisAddr))
	} else {
		snapshots = cache.NewMemoryCache()
	}

	view := catalog.NewView(store, snapshots, log)
	engine := cart.NewEngine()

	var publisher checkout.ReceiptPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("publishing sale receipts", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	coordinator := checkout.NewCoordinator(engine, store, view, publisher, log)

	// warm the catalog; a failure here is tolerable when the snapshot
	// cache has a recent copy
	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := view.Refresh(startupCtx); err != nil {
		log.Warn("initial catalog refresh failed", zap.Error(err))
	}
	cancel()

	router := server.NewRouter(server.Deps{
		Engine:         engine,
		View:           view,
		Coordinator:    coordinator,
		Barcodes:       store,
		Inventory:      store,
		Reports:        store,
		Log:            log,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("POS terminal starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
