package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
	"github.com/jmoiron/sqlx"
)

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) GetByPair(ctx context.Context, userA, userB string, mode domain.Mode) (*domain.Connection, error) {
	userA, userB = domain.CanonicalPair(userA, userB)

	var conn domain.Connection
	query := `
		SELECT id, user_a, user_b, mode, created_at
		FROM connections
		WHERE user_a = $1 AND user_b = $2 AND mode = $3
	`
	err := r.db.GetContext(ctx, &conn, query, userA, userB, mode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "connection"}
		}
		return nil, wrapStorage("get connection", err)
	}
	return &conn, nil
}

func (r *connectionRepository) ListForUser(ctx context.Context, userID string, mode domain.Mode) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	query := `
		SELECT id, user_a, user_b, mode, created_at
		FROM connections
		WHERE (user_a = $1 OR user_b = $1)
	`
	args := []any{userID}
	if mode != "" {
		query += ` AND mode = $2`
		args = append(args, mode)
	}
	query += ` ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &conns, query, args...); err != nil {
		return nil, wrapStorage("list connections", err)
	}
	return conns, nil
}
