package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "byteme-canteen/agg-svc/internal/api/http"
	"byteme-canteen/agg-svc/internal/domain"
	"byteme-canteen/agg-svc/internal/service"
	"byteme-canteen/agg-svc/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStats(t *testing.T) (*service.StatsService, *storage.Store) {
	t.Helper()
	_, rdb := newRedis(t)
	store := storage.NewStore(rdb)
	ctx := context.Background()

	event := placedEvent()
	require.NoError(t, store.RecordOrder(ctx, event))
	require.NoError(t, store.RecordOrder(ctx, domain.OrderEvent{
		Type:      domain.EventOrderPlaced,
		Items:     []domain.EventLine{{Name: "Soda", Quantity: 5}},
		Timestamp: event.Timestamp.Add(-24 * time.Hour),
	}))
	require.NoError(t, store.RecordStatus(ctx, domain.OrderEvent{Status: "Pending"}))
	require.NoError(t, store.RecordStatus(ctx, domain.OrderEvent{Status: "Out for Delivery"}))
	require.NoError(t, store.RecordReview(ctx, domain.OrderEvent{Items: []domain.EventLine{{Name: "Coffee"}}, Rating: 5}))
	require.NoError(t, store.RecordReview(ctx, domain.OrderEvent{Items: []domain.EventLine{{Name: "Coffee"}}, Rating: 2}))

	stats := service.NewStatsService(store)
	stats.Now = func() time.Time { return event.Timestamp }
	return stats, store
}

func TestStatsService(t *testing.T) {
	stats, store := seededStats(t)
	ctx := context.Background()

	allTime, err := stats.TopAllTime(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemScore{{Name: "Soda", Score: 5}, {Name: "Burger", Score: 2}}, allTime)

	today, err := stats.TopToday(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemScore{{Name: "Burger", Score: 2}}, today)

	rating, err := stats.Rating(ctx, "Coffee")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rating.ReviewCount)
	assert.Equal(t, int64(7), rating.RatingSum)
	assert.Equal(t, 3.5, rating.Average)

	_, err = stats.Rating(ctx, "Tea")
	assert.ErrorIs(t, err, domain.ErrNoRatings)

	counts, err := store.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"pending": 1, "out_for_delivery": 1}, counts)

	summary, err := stats.Summary(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary.MostPopular)
	assert.Equal(t, "Soda", summary.MostPopular.Name)
	require.NotNil(t, summary.MostPopularToday)
	assert.Equal(t, "Burger", summary.MostPopularToday.Name)
	assert.Len(t, summary.Statuses, 2)
}

func TestStatsHandlers(t *testing.T) {
	stats, _ := seededStats(t)
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(stats, nil)))
	defer srv.Close()

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{name: "health", path: "/health", wantCode: http.StatusOK},
		{name: "summary", path: "/api/stats", wantCode: http.StatusOK},
		{name: "top today", path: "/api/stats/top-today", wantCode: http.StatusOK},
		{name: "top all time limited", path: "/api/stats/top-alltime?limit=1", wantCode: http.StatusOK},
		{name: "bad limit", path: "/api/stats/top-alltime?limit=none", wantCode: http.StatusBadRequest},
		{name: "rating", path: "/api/stats/ratings/Coffee", wantCode: http.StatusOK},
		{name: "no rating", path: "/api/stats/ratings/Tea", wantCode: http.StatusNotFound},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + testCase.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, testCase.wantCode, resp.StatusCode)
		})
	}

	resp, err := http.Get(srv.URL + "/api/stats/top-alltime?limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	var items []domain.ItemScore
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Equal(t, []domain.ItemScore{{Name: "Soda", Score: 5}}, items)
}

func TestStatsHandlers_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()
	stats := service.NewStatsService(storage.NewStore(rdb))
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(stats, nil)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/stats/top-today")
	require.NoError(t, err)
	var items []domain.ItemScore
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, items)

	resp, err = http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
