package repository

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
)

type InteractionRepository interface {
	// Upsert writes the interaction, overwriting type and timestamp when a
	// row for (source, target, mode) already exists.
	Upsert(ctx context.Context, in *domain.Interaction) error
	Get(ctx context.Context, sourceID, targetID string, mode domain.Mode) (*domain.Interaction, error)
	// LikesReceived returns like interactions targeting userID under mode
	// that have no reciprocal like yet.
	LikesReceived(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Interaction, error)
	// UpsertAndPromote runs the like upsert and, when the reverse like
	// already exists, creates the connection for the canonical pair inside
	// the same transaction. The pair uniqueness constraint serializes
	// concurrent mutual likes: the losing inserter re-reads the winner's
	// row, so exactly one connection exists and both callers observe it.
	UpsertAndPromote(ctx context.Context, in *domain.Interaction) (*domain.Connection, bool, error)
}
