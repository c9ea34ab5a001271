package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

const upsertInteractionQuery = `
	INSERT INTO interactions (source_id, target_id, mode, type)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (source_id, target_id, mode)
	DO UPDATE SET type = EXCLUDED.type, created_at = NOW()
	RETURNING created_at
`

func (r *interactionRepository) Upsert(ctx context.Context, in *domain.Interaction) error {
	err := r.db.QueryRowContext(ctx, upsertInteractionQuery,
		in.SourceID, in.TargetID, in.Mode, in.Type,
	).Scan(&in.CreatedAt)
	if err != nil {
		return wrapStorage("upsert interaction", err)
	}
	return nil
}

func (r *interactionRepository) Get(ctx context.Context, sourceID, targetID string, mode domain.Mode) (*domain.Interaction, error) {
	var in domain.Interaction
	query := `
		SELECT source_id, target_id, mode, type, created_at
		FROM interactions
		WHERE source_id = $1 AND target_id = $2 AND mode = $3
	`
	err := r.db.GetContext(ctx, &in, query, sourceID, targetID, mode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "interaction"}
		}
		return nil, wrapStorage("get interaction", err)
	}
	return &in, nil
}

func (r *interactionRepository) LikesReceived(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Interaction, error) {
	var likes []*domain.Interaction
	query := `
		SELECT i.source_id, i.target_id, i.mode, i.type, i.created_at
		FROM interactions i
		WHERE i.target_id = $1 AND i.mode = $2 AND i.type = 'like'
		  AND NOT EXISTS (
			SELECT 1 FROM interactions r
			WHERE r.source_id = i.target_id AND r.target_id = i.source_id
			  AND r.mode = i.mode AND r.type = 'like'
		  )
		ORDER BY i.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &likes, query, userID, mode); err != nil {
		return nil, wrapStorage("list likes received", err)
	}
	return likes, nil
}

// UpsertAndPromote serializes concurrent mutual likes with a transaction
// scoped advisory lock on the canonical pair key, so the second liker
// always observes the first liker's committed row. The uniqueness
// constraint on connections (user_a, user_b, mode) remains as a backstop;
// if it trips and the existing row cannot be read back, the pair invariant
// is broken and a ConflictError is returned.
func (r *interactionRepository) UpsertAndPromote(ctx context.Context, in *domain.Interaction) (*domain.Connection, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, wrapStorage("begin promotion", err)
	}
	defer tx.Rollback()

	userA, userB := domain.CanonicalPair(in.SourceID, in.TargetID)
	pairKey := fmt.Sprintf("%s|%s|%s", userA, userB, in.Mode)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, pairKey); err != nil {
		return nil, false, wrapStorage("lock pair", err)
	}

	if err := tx.QueryRowContext(ctx, upsertInteractionQuery,
		in.SourceID, in.TargetID, in.Mode, in.Type,
	).Scan(&in.CreatedAt); err != nil {
		return nil, false, wrapStorage("upsert interaction", err)
	}

	var reciprocal bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM interactions
			WHERE source_id = $1 AND target_id = $2 AND mode = $3 AND type = 'like'
		)
	`, in.TargetID, in.SourceID, in.Mode).Scan(&reciprocal)
	if err != nil {
		return nil, false, wrapStorage("check reciprocal like", err)
	}

	if !reciprocal {
		if err := tx.Commit(); err != nil {
			return nil, false, wrapStorage("commit interaction", err)
		}
		return nil, false, nil
	}

	conn := &domain.Connection{
		ID:    uuid.NewString(),
		UserA: userA,
		UserB: userB,
		Mode:  in.Mode,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO connections (id, user_a, user_b, mode)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_a, user_b, mode) DO NOTHING
		RETURNING id, created_at
	`, conn.ID, conn.UserA, conn.UserB, conn.Mode).Scan(&conn.ID, &conn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the insert race; the winner's row must exist.
		err = tx.QueryRowContext(ctx, `
			SELECT id, created_at FROM connections
			WHERE user_a = $1 AND user_b = $2 AND mode = $3
		`, conn.UserA, conn.UserB, conn.Mode).Scan(&conn.ID, &conn.CreatedAt)
		if err != nil {
			return nil, false, &domain.ConflictError{
				Msg: fmt.Sprintf("connection for pair (%s, %s, %s) neither inserted nor readable", conn.UserA, conn.UserB, conn.Mode),
			}
		}
	} else if err != nil {
		return nil, false, wrapStorage("create connection", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, wrapStorage("commit promotion", err)
	}
	return conn, true, nil
}
