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
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, mode, display_name, bio, city, media,
	budget, cleanliness, social_level, smoker, has_pets,
	created_at, updated_at
`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Mode, &p.DisplayName, &p.Bio, &p.City, pq.Array(&p.Media),
		&p.Budget, &p.Cleanliness, &p.SocialLevel, &p.Smoker, &p.HasPets,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	query := `
		INSERT INTO profiles (
			id, user_id, mode, display_name, bio, city, media,
			budget, cleanliness, social_level, smoker, has_pets
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.UserID, profile.Mode, profile.DisplayName,
		profile.Bio, profile.City, pq.Array(profile.Media),
		profile.Budget, profile.Cleanliness, profile.SocialLevel,
		profile.Smoker, profile.HasPets,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return wrapStorage("create profile", err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, bio = $2, city = $3, media = $4,
		    budget = $5, cleanliness = $6, social_level = $7,
		    smoker = $8, has_pets = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Bio, profile.City, pq.Array(profile.Media),
		profile.Budget, profile.Cleanliness, profile.SocialLevel,
		profile.Smoker, profile.HasPets,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{Entity: "profile"}
		}
		return wrapStorage("update profile", err)
	}
	return nil
}

func (r *profileRepository) GetByUserAndMode(ctx context.Context, userID string, mode domain.Mode) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 AND mode = $2`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID, mode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "profile"}
		}
		return nil, wrapStorage("get profile", err)
	}
	return profile, nil
}

// GetCandidates builds the exclusion query from a fixed base plus positional
// predicates appended per filter. Predicate fields come from the server-side
// filter registry, never from client input.
func (r *profileRepository) GetCandidates(ctx context.Context, sourceID string, mode domain.Mode, preds []repository.CandidatePredicate, limit int) ([]*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		WHERE p.mode = $1
		  AND p.user_id <> $2
		  AND NOT EXISTS (
			SELECT 1 FROM interactions i
			WHERE i.source_id = $2 AND i.target_id = p.user_id AND i.mode = $1
		  )
	`
	args := []any{mode, sourceID}
	argCount := 3

	for _, pred := range preds {
		if pred.Equals != nil {
			query += fmt.Sprintf(" AND p.%s = $%d", pred.Field, argCount)
			args = append(args, *pred.Equals)
			argCount++
		}
		if pred.Min != nil {
			query += fmt.Sprintf(" AND p.%s >= $%d", pred.Field, argCount)
			args = append(args, *pred.Min)
			argCount++
		}
		if pred.Max != nil {
			query += fmt.Sprintf(" AND p.%s <= $%d", pred.Field, argCount)
			args = append(args, *pred.Max)
			argCount++
		}
	}

	query += fmt.Sprintf(" ORDER BY p.created_at ASC, p.id ASC LIMIT $%d", argCount)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStorage("get candidates", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			// A malformed row is excluded rather than failing the batch.
			continue
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage("get candidates", err)
	}
	return profiles, nil
}
