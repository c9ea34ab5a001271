package interaction

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
	"go.uber.org/zap"
)

type InteractionUseCase struct {
	interactionRepo repository.InteractionRepository
	profileRepo     repository.ProfileRepository
	log             *zap.Logger
}

func NewInteractionUseCase(
	interactionRepo repository.InteractionRepository,
	profileRepo repository.ProfileRepository,
	log *zap.Logger,
) *InteractionUseCase {
	return &InteractionUseCase{
		interactionRepo: interactionRepo,
		profileRepo:     profileRepo,
		log:             log,
	}
}

// Result reports the outcome of one recorded interaction. Connection and
// Peer are set only when the like completed a mutual pair.
type Result struct {
	Matched    bool                   `json:"matched"`
	Connection *domain.Connection     `json:"connection,omitempty"`
	Peer       *domain.MinimalProfile `json:"peer,omitempty"`
}

// Record upserts the directed interaction and, for likes, promotes a
// reciprocal pair to a connection. The repository serializes the
// check-then-act per canonical pair, so retries and concurrent mutual
// likes stay idempotent: one connection, reported to whichever caller
// completes the pair.
func (uc *InteractionUseCase) Record(ctx context.Context, sourceID, targetID string, mode domain.Mode, typ domain.InteractionType) (*Result, error) {
	if sourceID == "" {
		return nil, domain.Validationf("Source ID is required")
	}
	if targetID == "" {
		return nil, domain.Validationf("Target ID is required")
	}
	if !typ.Valid() {
		return nil, domain.Validationf("Type must be 'like' or 'dislike'")
	}
	if !mode.Valid() {
		return nil, domain.Validationf("Mode must be 'housing' or 'flatmate'")
	}
	if sourceID == targetID {
		return nil, domain.Validationf("Cannot interact with your own profile")
	}

	in := &domain.Interaction{
		SourceID: sourceID,
		TargetID: targetID,
		Mode:     mode,
		Type:     typ,
	}

	// Dislikes are a pure upsert; they never promote and never remove an
	// existing connection.
	if typ == domain.InteractionDislike {
		if err := uc.interactionRepo.Upsert(ctx, in); err != nil {
			return nil, err
		}
		return &Result{Matched: false}, nil
	}

	conn, matched, err := uc.interactionRepo.UpsertAndPromote(ctx, in)
	if err != nil {
		if domain.IsConflict(err) {
			uc.log.Error("match promotion invariant breach",
				zap.String("source_id", sourceID),
				zap.String("target_id", targetID),
				zap.String("mode", string(mode)),
				zap.Error(err),
			)
		}
		return nil, err
	}
	if !matched {
		return &Result{Matched: false}, nil
	}

	result := &Result{Matched: true, Connection: conn}
	if profile, err := uc.profileRepo.GetByUserAndMode(ctx, targetID, mode); err == nil {
		minimal := profile.Minimal()
		result.Peer = &minimal
	}

	uc.log.Info("connection created",
		zap.String("connection_id", conn.ID),
		zap.String("user_a", conn.UserA),
		zap.String("user_b", conn.UserB),
		zap.String("mode", string(mode)),
	)
	return result, nil
}
