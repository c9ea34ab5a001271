// Package filterstate holds the mutable values of the discovery filters
// for one user and mode. The state is constructed once and passed to its
// consumers explicitly; there is no package-level singleton. Every
// mutation persists through the backing store before observers are
// notified with a full snapshot.
package filterstate

import (
	"context"
	"sync"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
)

// Observer receives the full current mapping after every mutation.
type Observer func(snapshot map[string]any)

type State struct {
	userID string
	mode   domain.Mode
	store  repository.FilterStore

	mu        sync.Mutex
	values    map[string]any
	loaded    bool
	observers map[int]Observer
	nextObs   int
}

func New(store repository.FilterStore, userID string, mode domain.Mode) *State {
	return &State{
		userID:    userID,
		mode:      mode,
		store:     store,
		observers: make(map[int]Observer),
	}
}

// ensureLoaded pulls persisted values on first access.
func (s *State) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	values, err := s.store.Load(ctx, s.userID, s.mode)
	if err != nil {
		return err
	}
	if values == nil {
		values = make(map[string]any)
	}
	s.values = values
	s.loaded = true
	return nil
}

func (s *State) Get(ctx context.Context, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

func (s *State) GetAll(ctx context.Context) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return map[string]any{}
	}
	return s.snapshotLocked()
}

// Set persists the value, then synchronously notifies every observer with
// the full mapping. Unknown keys are rejected so the store only ever holds
// registry-backed filters.
func (s *State) Set(ctx context.Context, key string, value any) error {
	if _, ok := domain.FilterByKey(key); !ok {
		return domain.Validationf("Unknown filter key %q", key)
	}

	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.store.Save(ctx, s.userID, s.mode, key, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.values[key] = value
	snapshot := s.snapshotLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	for _, obs := range observers {
		obs(snapshot)
	}
	return nil
}

func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Clear(ctx, s.userID, s.mode); err != nil {
		s.mu.Unlock()
		return err
	}
	s.values = make(map[string]any)
	s.loaded = true
	snapshot := s.snapshotLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	for _, obs := range observers {
		obs(snapshot)
	}
	return nil
}

// Subscribe registers an observer and returns its unsubscribe func.
func (s *State) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = obs
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *State) snapshotLocked() map[string]any {
	snapshot := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	return snapshot
}

func (s *State) observersLocked() []Observer {
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	return observers
}
