// File: services/channel/history.go
package channel

import (
	"context"
	"encoding/json"
	"time"

	"bookline/models"

	"github.com/go-redis/redis/v8"
)

const historyPrefix = "chat:hist:"

// HistoryStore holds the bounded per-chat conversation history.
type HistoryStore interface {
	Get(ctx context.Context, chatKey string) (*models.Conversation, error)
	Set(ctx context.Context, chatKey string, conv *models.Conversation) error
	Clear(ctx context.Context, chatKey string) error
}

// RedisHistoryStore keeps conversations in Redis with a TTL; history is
// working memory for the agent, not an audit record.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func (s *RedisHistoryStore) Get(ctx context.Context, chatKey string) (*models.Conversation, error) {
	key := historyPrefix + chatKey
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.Conversation{}, nil
	}
	if err != nil {
		return nil, err
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *RedisHistoryStore) Set(ctx context.Context, chatKey string, conv *models.Conversation) error {
	key := historyPrefix + chatKey
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisHistoryStore) Clear(ctx context.Context, chatKey string) error {
	key := historyPrefix + chatKey
	return s.client.Del(ctx, key).Err()
}
