package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "byteme-canteen/agg-svc/internal/api/http"
	"byteme-canteen/agg-svc/internal/service"
	"byteme-canteen/agg-svc/internal/storage"
	"byteme-canteen/config"
	"byteme-canteen/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("agg-svc", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logger.Must("agg-svc", cfg.LogLevel)
	defer log.Sync()

	if cfg.RedisAddr() == "" || cfg.KafkaBroker == "" {
		log.Fatal("REDIS_HOST and KAFKA_BROKER are required")
	}

	rdb := config.MustInitRedis(cfg.RedisAddr(), log)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.KafkaBroker, cfg.KafkaTopic, "agg-svc-consumer")
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewStore(rdb)
	handler := httpapi.NewHandler(service.NewStatsService(store), log)
	srv := httpapi.NewServer(cfg.Addr(), httpapi.NewRouter(handler))

	go func() {
		log.Info("stats api starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	consumer := service.NewConsumer(reader, store, log)
	consumer.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	log.Info("aggregation service stopped", zap.String("topic", cfg.KafkaTopic))
}
