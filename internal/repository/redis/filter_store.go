package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
	"github.com/redis/go-redis/v9"
)

// filterStore keeps one hash per (user, mode); fields are filter keys,
// values are JSON-encoded so booleans and ranges share the same slot.
type filterStore struct {
	client *redis.Client
}

func NewFilterStore(client *redis.Client) repository.FilterStore {
	return &filterStore{client: client}
}

func filterKey(userID string, mode domain.Mode) string {
	return fmt.Sprintf("filters:%s:%s", userID, mode)
}

func (s *filterStore) Load(ctx context.Context, userID string, mode domain.Mode) (map[string]any, error) {
	raw, err := s.client.HGetAll(ctx, filterKey(userID, mode)).Result()
	if err != nil {
		return nil, &domain.TransientError{Op: "load filters", Err: err}
	}

	values := make(map[string]any, len(raw))
	for key, encoded := range raw {
		flt, ok := domain.FilterByKey(key)
		if !ok {
			continue
		}
		switch flt.Type {
		case domain.FilterToggle:
			var v bool
			if json.Unmarshal([]byte(encoded), &v) == nil {
				values[key] = v
			}
		case domain.FilterRange:
			var v domain.RangeValue
			if json.Unmarshal([]byte(encoded), &v) == nil {
				values[key] = v
			}
		}
	}
	return values, nil
}

func (s *filterStore) Save(ctx context.Context, userID string, mode domain.Mode, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode filter value: %w", err)
	}
	if err := s.client.HSet(ctx, filterKey(userID, mode), key, encoded).Err(); err != nil {
		return &domain.TransientError{Op: "save filter", Err: err}
	}
	return nil
}

func (s *filterStore) Clear(ctx context.Context, userID string, mode domain.Mode) error {
	if err := s.client.Del(ctx, filterKey(userID, mode)).Err(); err != nil {
		return &domain.TransientError{Op: "clear filters", Err: err}
	}
	return nil
}
