package repository

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
)

// FilterStore persists filter values per user and mode so toggles survive
// process restarts. Values are either bool or domain.RangeValue.
type FilterStore interface {
	Load(ctx context.Context, userID string, mode domain.Mode) (map[string]any, error)
	Save(ctx context.Context, userID string, mode domain.Mode, key string, value any) error
	Clear(ctx context.Context, userID string, mode domain.Mode) error
}
