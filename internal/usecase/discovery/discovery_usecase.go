package discovery

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
)

// candidateLimit bounds one discovery page; the client replenishes before
// exhausting it.
const candidateLimit = 50

type DiscoveryUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewDiscoveryUseCase(profileRepo repository.ProfileRepository) *DiscoveryUseCase {
	return &DiscoveryUseCase{profileRepo: profileRepo}
}

// GetCandidates returns eligible profiles for sourceID under mode: never
// the requester's own profile, never anyone the requester already has an
// interaction with, only users holding a profile for the mode. Order is
// stable (created_at, id). An empty result is not an error.
func (uc *DiscoveryUseCase) GetCandidates(ctx context.Context, sourceID string, mode domain.Mode, filters map[string]any) ([]*domain.Profile, error) {
	if sourceID == "" {
		return nil, domain.Validationf("Source ID is required")
	}
	if !mode.Valid() {
		return nil, domain.Validationf("Type must be 'housing' or 'flatmate'")
	}

	candidates, err := uc.profileRepo.GetCandidates(ctx, sourceID, mode, translate(filters), candidateLimit)
	if err != nil {
		if domain.IsNotFound(err) {
			return []*domain.Profile{}, nil
		}
		return nil, err
	}
	if candidates == nil {
		candidates = []*domain.Profile{}
	}
	return candidates, nil
}

// translate maps declarative filter values onto column predicates. Unknown
// keys and malformed values constrain nothing; range bounds are clamped to
// the descriptor's own limits.
func translate(filters map[string]any) []repository.CandidatePredicate {
	var preds []repository.CandidatePredicate
	for key, value := range filters {
		flt, ok := domain.FilterByKey(key)
		if !ok {
			continue
		}
		switch flt.Type {
		case domain.FilterToggle:
			v, ok := value.(bool)
			if !ok {
				continue
			}
			preds = append(preds, repository.CandidatePredicate{Field: flt.Options.Field, Equals: &v})
		case domain.FilterRange:
			rng, ok := rangeValue(value)
			if !ok {
				continue
			}
			if flt.Options.Min != nil && rng.Min < *flt.Options.Min {
				rng.Min = *flt.Options.Min
			}
			if flt.Options.Max != nil && rng.Max > *flt.Options.Max {
				rng.Max = *flt.Options.Max
			}
			preds = append(preds, repository.CandidatePredicate{
				Field: flt.Options.Field,
				Min:   &rng.Min,
				Max:   &rng.Max,
			})
		}
	}
	return preds
}

// rangeValue accepts either a typed RangeValue or the {"min","max"} object
// shape JSON decoding produces.
func rangeValue(value any) (domain.RangeValue, bool) {
	switch v := value.(type) {
	case domain.RangeValue:
		return v, true
	case map[string]any:
		min, okMin := v["min"].(float64)
		max, okMax := v["max"].(float64)
		if !okMin || !okMax || min > max {
			return domain.RangeValue{}, false
		}
		return domain.RangeValue{Min: min, Max: max}, true
	}
	return domain.RangeValue{}, false
}
