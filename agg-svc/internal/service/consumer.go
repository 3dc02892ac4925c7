package service

import (
	"context"
	"encoding/json"

	"byteme-canteen/agg-svc/internal/domain"

	"go.uber.org/zap"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Logger *zap.Logger
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
	}
}

// Start reads events until ctx is done.
func (c *Consumer) Start(ctx context.Context) {
	c.logger().Info("starting aggregation consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger().Info("aggregation consumer stopped")
				return
			}
			c.logger().Warn("error reading message", zap.Error(err))
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.logger().Warn("error unmarshaling message", zap.Error(err))
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	log := c.logger().With(zap.String("type", event.Type), zap.String("order_id", event.OrderID))

	var err error
	switch event.Type {
	case domain.EventOrderPlaced:
		if err = c.Store.RecordOrder(ctx, event); err == nil {
			err = c.Store.RecordStatus(ctx, event)
		}
	case domain.EventOrderStatusChanged, domain.EventOrderCanceled:
		err = c.Store.RecordStatus(ctx, event)
	case domain.EventReviewAdded:
		err = c.Store.RecordReview(ctx, event)
	case domain.EventOrderRefunded:
		log.Info("refund recorded upstream, nothing to aggregate")
		return
	default:
		log.Debug("ignoring event")
		return
	}

	if err != nil {
		log.Error("error aggregating event", zap.Error(err))
		return
	}
	log.Info("event aggregated", zap.Int("lines", len(event.Items)))
}

func (c *Consumer) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
