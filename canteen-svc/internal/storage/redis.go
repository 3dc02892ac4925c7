package storage

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const PopularityKey = "canteen:popular"

// RedisCartStore keeps each cart as a hash of line index to encoded line.
type RedisCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl}
}

func (s *RedisCartStore) CartKey(loginID string) string {
	return "cart:" + loginID
}

func (s *RedisCartStore) LoadCart(ctx context.Context, loginID string) ([]domain.CartLine, error) {
	fields, err := s.Client.HGetAll(ctx, s.CartKey(loginID)).Result()
	if err != nil {
		return nil, err
	}

	type indexed struct {
		pos  int
		line domain.CartLine
	}
	entries := make([]indexed, 0, len(fields))
	for field, value := range fields {
		pos, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		var line domain.CartLine
		if err := json.Unmarshal([]byte(value), &line); err != nil {
			continue
		}
		entries = append(entries, indexed{pos: pos, line: line})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })

	lines := make([]domain.CartLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.line)
	}
	return lines, nil
}

func (s *RedisCartStore) SaveCart(ctx context.Context, loginID string, lines []domain.CartLine) error {
	key := s.CartKey(loginID)
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(lines) == 0 {
			return nil
		}
		values := make(map[string]interface{}, len(lines))
		for i, line := range lines {
			payload, _ := json.Marshal(line)
			values[strconv.Itoa(i)] = payload
		}
		pipe.HSet(ctx, key, values)
		if s.TTL > 0 {
			pipe.Expire(ctx, key, s.TTL)
		}
		return nil
	})
	return err
}

// RedisPopularity reads the all-time ranking kept by the aggregation service.
type RedisPopularity struct {
	Client *redis.Client
	Key    string
}

func NewRedisPopularity(client *redis.Client) *RedisPopularity {
	return &RedisPopularity{Client: client, Key: PopularityKey}
}

func (p *RedisPopularity) TopItems(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	entries, err := p.Client.ZRevRangeWithScores(ctx, p.Key, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	items := make([]domain.PopularItem, 0, len(entries))
	for _, z := range entries {
		name, _ := z.Member.(string)
		items = append(items, domain.PopularItem{Name: name, Score: z.Score})
	}
	return items, nil
}
