package memory

import (
	"context"
	"sync"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
)

type filterStore struct {
	mu     sync.Mutex
	values map[string]map[string]any
}

func NewFilterStore() repository.FilterStore {
	return &filterStore{values: make(map[string]map[string]any)}
}

func fsKey(userID string, mode domain.Mode) string {
	return userID + ":" + string(mode)
}

func (s *filterStore) Load(_ context.Context, userID string, mode domain.Mode) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any)
	for k, v := range s.values[fsKey(userID, mode)] {
		out[k] = v
	}
	return out, nil
}

func (s *filterStore) Save(_ context.Context, userID string, mode domain.Mode, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.values[fsKey(userID, mode)]
	if bucket == nil {
		bucket = make(map[string]any)
		s.values[fsKey(userID, mode)] = bucket
	}
	bucket[key] = value
	return nil
}

func (s *filterStore) Clear(_ context.Context, userID string, mode domain.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, fsKey(userID, mode))
	return nil
}
