package service

import (
	"context"

	"byteme-canteen/agg-svc/internal/domain"
	"byteme-canteen/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, event domain.OrderEvent) error
	RecordStatus(ctx context.Context, event domain.OrderEvent) error
	RecordReview(ctx context.Context, event domain.OrderEvent) error
}

type StatsStore interface {
	TopItems(ctx context.Context, key string, limit int) ([]domain.ItemScore, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
	Rating(ctx context.Context, item string) (domain.ItemRating, error)
}

type StatsInterface interface {
	TopToday(ctx context.Context, limit int) ([]domain.ItemScore, error)
	TopAllTime(ctx context.Context, limit int) ([]domain.ItemScore, error)
	Rating(ctx context.Context, item string) (domain.ItemRating, error)
	Summary(ctx context.Context) (domain.StatsResponse, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.OrderEvent)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ StatsStore        = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
	_ StatsInterface    = (*StatsService)(nil)
)
