package storage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"byteme-canteen/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	PopularKey      = "canteen:popular"
	dailyKeyPrefix  = "canteen:popular:"
	statusKeyPrefix = "canteen:status:"
	ratingKeyPrefix = "canteen:rating:"
	dailyTTL        = 7 * 24 * time.Hour
)

type Store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

func DailyKey(day time.Time) string {
	return dailyKeyPrefix + day.Format("2006-01-02")
}

func StatusKey(status string) string {
	return statusKeyPrefix + strings.ToLower(strings.ReplaceAll(status, " ", "_"))
}

func RatingKey(item string) string {
	return ratingKeyPrefix + item
}

// RecordOrder adds each line's quantity to the all-time and daily rankings.
func (s *Store) RecordOrder(ctx context.Context, event domain.OrderEvent) error {
	day := event.Timestamp
	if day.IsZero() {
		day = s.now()
	}
	dailyKey := DailyKey(day)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, line := range event.Items {
			pipe.ZIncrBy(ctx, PopularKey, float64(line.Quantity), line.Name)
			pipe.ZIncrBy(ctx, dailyKey, float64(line.Quantity), line.Name)
		}
		pipe.Expire(ctx, dailyKey, dailyTTL)
		return nil
	})
	return err
}

func (s *Store) RecordStatus(ctx context.Context, event domain.OrderEvent) error {
	if event.Status == "" {
		return nil
	}
	return s.rdb.Incr(ctx, StatusKey(event.Status)).Err()
}

// RecordReview keeps a running count and rating sum per item.
func (s *Store) RecordReview(ctx context.Context, event domain.OrderEvent) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, line := range event.Items {
			key := RatingKey(line.Name)
			pipe.HIncrBy(ctx, key, "review_count", 1)
			pipe.HIncrBy(ctx, key, "rating_sum", int64(event.Rating))
			pipe.HSet(ctx, key, "last_updated", s.now().Unix())
		}
		return nil
	})
	return err
}

func (s *Store) TopItems(ctx context.Context, key string, limit int) ([]domain.ItemScore, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	result, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	items := make([]domain.ItemScore, 0, len(result))
	for _, z := range result {
		name, _ := z.Member.(string)
		items = append(items, domain.ItemScore{Name: name, Score: z.Score})
	}
	return items, nil
}

// StatusCounts returns the counters keyed by their normalised status name.
func (s *Store) StatusCounts(ctx context.Context) (map[string]int64, error) {
	keys, err := s.rdb.Keys(ctx, statusKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(keys))
	for _, key := range keys {
		n, err := s.rdb.Get(ctx, key).Int64()
		if err != nil {
			continue
		}
		counts[strings.TrimPrefix(key, statusKeyPrefix)] = n
	}
	return counts, nil
}

func (s *Store) Rating(ctx context.Context, item string) (domain.ItemRating, error) {
	fields, err := s.rdb.HGetAll(ctx, RatingKey(item)).Result()
	if err != nil {
		return domain.ItemRating{}, err
	}
	if len(fields) == 0 {
		return domain.ItemRating{}, domain.ErrNoRatings
	}
	rating := domain.ItemRating{Name: item}
	rating.ReviewCount, _ = strconv.ParseInt(fields["review_count"], 10, 64)
	rating.RatingSum, _ = strconv.ParseInt(fields["rating_sum"], 10, 64)
	if rating.ReviewCount > 0 {
		rating.Average = float64(rating.RatingSum) / float64(rating.ReviewCount)
	}
	return rating, nil
}
