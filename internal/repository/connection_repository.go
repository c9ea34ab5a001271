package repository

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
)

type ConnectionRepository interface {
	GetByPair(ctx context.Context, userA, userB string, mode domain.Mode) (*domain.Connection, error)
	// ListForUser returns connections ordered created_at descending. Empty
	// mode means all modes.
	ListForUser(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Connection, error)
}
