package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aescanero/dago-libs/pkg/domain/state"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// errStateNotFound is returned by Load when no state is stored for an execution
var errStateNotFound = errors.New("state not found")

// RedisStateStore implements ports.StateStorage using Redis JSON
type RedisStateStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStateStore creates a new Redis state store keyed by prefix + execution ID
func NewRedisStateStore(client *redis.Client, prefix string, logger *zap.Logger) *RedisStateStore {
	return &RedisStateStore{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *RedisStateStore) key(executionID string) string {
	return s.prefix + executionID
}

// Save saves execution state
func (s *RedisStateStore) Save(ctx context.Context, executionID string, st state.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(executionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	return nil
}

// Load loads execution state
func (s *RedisStateStore) Load(ctx context.Context, executionID string) (state.State, error) {
	data, err := s.client.Get(ctx, s.key(executionID)).Result()
	if err != nil {
		return nil, loadError(executionID, err)
	}

	// Unmarshal JSON to state.State (which is map[string]interface{})
	var st state.State
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	s.logger.Debug("state loaded",
		zap.String("execution_id", executionID),
		zap.Int("keys", len(st)),
	)

	return st, nil
}

// loadError maps a Redis GET failure to the error reported for executionID
func loadError(executionID string, err error) error {
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w for execution %s", errStateNotFound, executionID)
	}
	return fmt.Errorf("failed to load state: %w", err)
}

// Delete deletes execution state
func (s *RedisStateStore) Delete(ctx context.Context, executionID string) error {
	if err := s.client.Del(ctx, s.key(executionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}

	return nil
}

// Exists checks if state exists for an execution
func (s *RedisStateStore) Exists(ctx context.Context, executionID string) (bool, error) {
	result, err := s.client.Exists(ctx, s.key(executionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return result > 0, nil
}

// SetTTL sets a time-to-live for state data
func (s *RedisStateStore) SetTTL(ctx context.Context, executionID string, ttl time.Duration) error {
	if err := s.client.Expire(ctx, s.key(executionID), ttl).Err(); err != nil {
		return fmt.Errorf("failed to set TTL: %w", err)
	}

	return nil
}

// List returns all execution IDs that have stored state
func (s *RedisStateStore) List(ctx context.Context) ([]string, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return s.executionIDs(keys), nil
}

// executionIDs strips the key prefix, skipping keys that carry no execution ID
func (s *RedisStateStore) executionIDs(keys []string) []string {
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, ok := strings.CutPrefix(key, s.prefix)
		if ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SaveState persists execution state (compatibility method)
func (s *RedisStateStore) SaveState(ctx context.Context, st interface{}) error {
	stateMap, ok := st.(map[string]interface{})
	if !ok {
		return fmt.Errorf("expected map[string]interface{}, got %T", st)
	}

	executionID, ok := stateMap["graph_id"].(string)
	if !ok {
		executionID, ok = stateMap["execution_id"].(string)
		if !ok {
			return fmt.Errorf("state missing graph_id or execution_id field")
		}
	}

	return s.Save(ctx, executionID, state.State(stateMap))
}

// GetState retrieves execution state (compatibility method)
func (s *RedisStateStore) GetState(ctx context.Context, graphID string) (interface{}, error) {
	return s.Load(ctx, graphID)
}
