package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"byteme-canteen/canteen-svc/docs"
	httpapi "byteme-canteen/canteen-svc/internal/api/http"
	"byteme-canteen/canteen-svc/internal/service"
	"byteme-canteen/canteen-svc/internal/storage"
	"byteme-canteen/config"
	"byteme-canteen/logger"
	"byteme-canteen/tracing"

	"go.uber.org/zap"
)

// @title Byte Me! Canteen API
// @version 1.0
// @description Menu, cart, checkout and order management for the campus canteen.
// @BasePath /
func main() {
	cfg, err := config.Load("canteen-svc", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logger.Must("canteen-svc", cfg.LogLevel)
	defer log.Sync()

	shutdownTracing, err := tracing.Init("canteen-svc", cfg.TraceStdout)
	if err != nil {
		log.Fatal("failed to init tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	docs.SwaggerInfo.Host = ""

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := service.Deps{
		Snapshots:   mustSnapshotRepository(ctx, cfg, log),
		Transcripts: storage.NewTranscriptFiles(cfg.TranscriptDir),
		Receipts:    service.ReceiptQR{BaseURL: cfg.PublicURL},
		Admin:       service.Credentials{LoginID: cfg.AdminID, Password: cfg.AdminPassword},
		Logger:      log,
	}

	if addr := cfg.RedisAddr(); addr != "" {
		rdb := config.MustInitRedis(addr, log)
		defer rdb.Close()
		deps.Carts = storage.NewRedisCartStore(rdb, 7*24*time.Hour)
		deps.Popularity = storage.NewRedisPopularity(rdb)
		log.Info("redis cart store and popularity ranking enabled", zap.String("addr", addr))
	}

	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic)
		defer writer.Close()
		deps.Publisher = storage.NewKafkaPublisher(writer)
		log.Info("order events enabled", zap.String("broker", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
	}

	engine := service.Bootstrap(ctx, deps)

	handler := httpapi.NewHandler(engine, httpapi.NewSessionStore(cfg.SessionSecret(log), cfg.CookieSecure), log)
	srv := httpapi.NewServer(cfg.Addr(), httpapi.NewRouter(handler))

	go func() {
		log.Info("canteen service starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := engine.Save(shutdownCtx); err != nil {
		log.Error("final snapshot failed", zap.Error(err))
	}
}

func mustSnapshotRepository(ctx context.Context, cfg config.Config, log *zap.Logger) service.SnapshotRepository {
	var db *sql.DB
	var dialect string

	switch cfg.StoreType {
	case config.StorePostgres:
		db, dialect = config.MustInitPostgres(cfg.DB, log), storage.DialectPostgres
	case config.StoreSQLite:
		db, dialect = config.MustInitSQLite(cfg.SQLitePath, log), storage.DialectSQLite
	default:
		log.Info("using snapshot file", zap.String("path", cfg.SnapshotPath))
		return storage.NewSnapshotGateway(storage.NewFileStore(cfg.SnapshotPath))
	}

	store, err := storage.NewSQLStore(db, dialect)
	if err != nil {
		log.Fatal("failed to create snapshot store", zap.Error(err))
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("failed to ensure snapshot schema", zap.Error(err))
	}
	log.Info("using sql snapshot store", zap.String("dialect", dialect))
	return storage.NewSnapshotGateway(store)
}
