package repository

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
)

// CandidatePredicate is one translated filter constraint applied to a
// numeric or boolean profile column. Nil bounds mean unconstrained on that
// side.
type CandidatePredicate struct {
	Field  string
	Equals *bool
	Min    *float64
	Max    *float64
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByUserAndMode(ctx context.Context, userID string, mode domain.Mode) (*domain.Profile, error)
	// GetCandidates returns profiles for mode excluding the source user and
	// anyone the source already has an interaction with (either type),
	// ordered by created_at then id so paging is deterministic.
	GetCandidates(ctx context.Context, sourceID string, mode domain.Mode, preds []CandidatePredicate, limit int) ([]*domain.Profile, error)
}
