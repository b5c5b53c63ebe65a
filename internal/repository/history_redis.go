package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/futig/interview-agent/internal/entity"
	"github.com/redis/go-redis/v9"
)

// HistoryRedis stores every session history as a Redis list of JSON exchanges
type HistoryRedis struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

func NewHistoryRedis(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *HistoryRedis {
	return &HistoryRedis{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *HistoryRedis) Append(ctx context.Context, sessionID string, exchange entity.QAExchange) error {
	payload, err := json.Marshal(exchange)
	if err != nil {
		return fmt.Errorf("marshal exchange: %w", err)
	}

	key := s.key(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

func (s *HistoryRedis) Read(ctx context.Context, sessionID string) ([]entity.QAExchange, error) {
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	history := make([]entity.QAExchange, 0, len(raw))
	for i, item := range raw {
		var exchange entity.QAExchange
		if err := json.Unmarshal([]byte(item), &exchange); err != nil {
			return nil, fmt.Errorf("decode history item %d: %w", i, err)
		}
		history = append(history, exchange)
	}

	return history, nil
}

func (s *HistoryRedis) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}

func (s *HistoryRedis) key(sessionID string) string {
	return s.keyPrefix + sessionID
}
