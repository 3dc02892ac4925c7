package tests

import (
	"context"
	"testing"
	"time"

	"byteme-canteen/agg-svc/internal/domain"
	"byteme-canteen/agg-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestStore_RecordOrder(t *testing.T) {
	mr, rdb := newRedis(t)
	store := storage.NewStore(rdb)
	ctx := context.Background()

	event := placedEvent()
	event.Items = append(event.Items, domain.EventLine{Name: "Soda", Quantity: 1})
	require.NoError(t, store.RecordOrder(ctx, event))
	require.NoError(t, store.RecordOrder(ctx, event))

	burger, err := mr.ZScore(storage.PopularKey, "Burger")
	require.NoError(t, err)
	assert.Equal(t, 4.0, burger)

	soda, err := mr.ZScore(storage.PopularKey, "Soda")
	require.NoError(t, err)
	assert.Equal(t, 2.0, soda)

	dailyKey := storage.DailyKey(event.Timestamp)
	assert.Equal(t, "canteen:popular:2024-03-01", dailyKey)
	daily, err := mr.ZScore(dailyKey, "Burger")
	require.NoError(t, err)
	assert.Equal(t, 4.0, daily)
	assert.Equal(t, 7*24*time.Hour, mr.TTL(dailyKey))
}

func TestStore_RecordStatus(t *testing.T) {
	mr, rdb := newRedis(t)
	store := storage.NewStore(rdb)
	ctx := context.Background()

	require.NoError(t, store.RecordStatus(ctx, domain.OrderEvent{Status: "Out for Delivery"}))
	require.NoError(t, store.RecordStatus(ctx, domain.OrderEvent{Status: "Out for Delivery"}))
	require.NoError(t, store.RecordStatus(ctx, domain.OrderEvent{}))

	value, err := mr.Get("canteen:status:out_for_delivery")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
	assert.Len(t, mr.Keys(), 1)
}

func TestStore_RecordReview(t *testing.T) {
	mr, rdb := newRedis(t)
	store := storage.NewStore(rdb)
	ctx := context.Background()

	review := domain.OrderEvent{Type: domain.EventReviewAdded, Items: []domain.EventLine{{Name: "Coffee"}}, Rating: 4}
	require.NoError(t, store.RecordReview(ctx, review))
	review.Rating = 2
	require.NoError(t, store.RecordReview(ctx, review))

	key := storage.RatingKey("Coffee")
	assert.Equal(t, "2", mr.HGet(key, "review_count"))
	assert.Equal(t, "6", mr.HGet(key, "rating_sum"))
}
