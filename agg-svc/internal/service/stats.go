package service

import (
	"context"
	"time"

	"byteme-canteen/agg-svc/internal/domain"
	"byteme-canteen/agg-svc/internal/storage"
)

// StatsService answers read queries over the aggregates the Consumer keeps.
type StatsService struct {
	Store StatsStore
	Now   func() time.Time
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{Store: store, Now: time.Now}
}

func (s *StatsService) TopToday(ctx context.Context, limit int) ([]domain.ItemScore, error) {
	return s.Store.TopItems(ctx, storage.DailyKey(s.Now()), limit)
}

func (s *StatsService) TopAllTime(ctx context.Context, limit int) ([]domain.ItemScore, error) {
	return s.Store.TopItems(ctx, storage.PopularKey, limit)
}

func (s *StatsService) Rating(ctx context.Context, item string) (domain.ItemRating, error) {
	return s.Store.Rating(ctx, item)
}

// Summary combines the leaders of both rankings with the status counters.
// Missing aggregates leave their field empty.
func (s *StatsService) Summary(ctx context.Context) (domain.StatsResponse, error) {
	var response domain.StatsResponse

	allTime, err := s.TopAllTime(ctx, 1)
	if err != nil {
		return response, err
	}
	if len(allTime) > 0 {
		response.MostPopular = &allTime[0]
	}

	today, err := s.TopToday(ctx, 1)
	if err != nil {
		return response, err
	}
	if len(today) > 0 {
		response.MostPopularToday = &today[0]
	}

	response.Statuses, err = s.Store.StatusCounts(ctx)
	return response, err
}
