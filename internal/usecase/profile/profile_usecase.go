package profile

import (
	"context"
	"time"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
)

type ProfileUseCase struct {
	profileRepo     repository.ProfileRepository
	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	interactionRepo repository.InteractionRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
	}
}

// Payload is the profile response shape. Age is derived from the owning
// user record rather than stored.
type Payload struct {
	Profile *domain.Profile        `json:"profile,omitempty"`
	Minimal *domain.MinimalProfile `json:"minimal,omitempty"`
	Age     *int                   `json:"age,omitempty"`
}

// HousingRequest is one pending like on the source's housing profile.
type HousingRequest struct {
	Requester domain.MinimalProfile `json:"requester"`
	SentAt    time.Time             `json:"sent_at"`
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID string, mode domain.Mode, minimal bool) (*Payload, error) {
	if userID == "" {
		return nil, domain.Validationf("User ID is required")
	}
	if mode == "" {
		mode = domain.ModeFlatmate
	}
	if !mode.Valid() {
		return nil, domain.Validationf("Mode must be 'housing' or 'flatmate'")
	}

	profile, err := uc.profileRepo.GetByUserAndMode(ctx, userID, mode)
	if err != nil {
		return nil, err
	}

	payload := &Payload{}
	if minimal {
		m := profile.Minimal()
		payload.Minimal = &m
	} else {
		payload.Profile = profile
	}
	if user, err := uc.userRepo.GetByID(ctx, userID); err == nil {
		age := user.Age()
		payload.Age = &age
	}
	return payload, nil
}

// HousingRequests lists likes received on the source's housing profile
// that the source has not answered yet, newest first.
func (uc *ProfileUseCase) HousingRequests(ctx context.Context, sourceID string) ([]*HousingRequest, error) {
	if sourceID == "" {
		return nil, domain.Validationf("Source ID is required")
	}

	likes, err := uc.interactionRepo.LikesReceived(ctx, sourceID, domain.ModeHousing)
	if err != nil {
		if domain.IsNotFound(err) {
			return []*HousingRequest{}, nil
		}
		return nil, err
	}

	requests := make([]*HousingRequest, 0, len(likes))
	for _, like := range likes {
		profile, err := uc.profileRepo.GetByUserAndMode(ctx, like.SourceID, domain.ModeHousing)
		if err != nil {
			continue
		}
		requests = append(requests, &HousingRequest{
			Requester: profile.Minimal(),
			SentAt:    like.CreatedAt,
		})
	}
	return requests, nil
}
