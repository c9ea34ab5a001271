package discovery

import (
	"context"
	"testing"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store *memory.Store, userID string, mode domain.Mode, mutate func(*domain.Profile)) {
	t.Helper()
	p := &domain.Profile{UserID: userID, Mode: mode, DisplayName: userID}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, store.Profiles().Create(context.Background(), p))
}

func ids(profiles []*domain.Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.UserID)
	}
	return out
}

func TestGetCandidates_Validation(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())
	ctx := context.Background()

	_, err := uc.GetCandidates(ctx, "", domain.ModeHousing, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Source ID is required", err.Error())

	_, err = uc.GetCandidates(ctx, "u1", "speed-dating", nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestGetCandidates_ExcludesSelfAndInteracted(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())
	ctx := context.Background()

	seed(t, store, "u1", domain.ModeHousing, nil)
	seed(t, store, "u2", domain.ModeHousing, nil)
	seed(t, store, "u3", domain.ModeHousing, nil)
	seed(t, store, "u4", domain.ModeHousing, nil)
	seed(t, store, "u5", domain.ModeFlatmate, nil) // wrong mode

	// u1 already answered u2 (like) and u3 (dislike); both are excluded.
	require.NoError(t, store.Interactions().Upsert(ctx, &domain.Interaction{
		SourceID: "u1", TargetID: "u2", Mode: domain.ModeHousing, Type: domain.InteractionLike,
	}))
	require.NoError(t, store.Interactions().Upsert(ctx, &domain.Interaction{
		SourceID: "u1", TargetID: "u3", Mode: domain.ModeHousing, Type: domain.InteractionDislike,
	}))

	candidates, err := uc.GetCandidates(ctx, "u1", domain.ModeHousing, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"u4"}, ids(candidates))
}

func TestGetCandidates_InboundLikeDoesNotExclude(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())
	ctx := context.Background()

	seed(t, store, "u2", domain.ModeHousing, nil)
	require.NoError(t, store.Interactions().Upsert(ctx, &domain.Interaction{
		SourceID: "u2", TargetID: "u1", Mode: domain.ModeHousing, Type: domain.InteractionLike,
	}))

	candidates, err := uc.GetCandidates(ctx, "u1", domain.ModeHousing, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, ids(candidates))
}

func TestGetCandidates_StableOrdering(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())

	for _, id := range []string{"a", "b", "c"} {
		seed(t, store, id, domain.ModeFlatmate, nil)
	}

	first, err := uc.GetCandidates(context.Background(), "u1", domain.ModeFlatmate, nil)
	require.NoError(t, err)
	second, err := uc.GetCandidates(context.Background(), "u1", domain.ModeFlatmate, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}

func TestGetCandidates_EmptyIsNotError(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())

	candidates, err := uc.GetCandidates(context.Background(), "u1", domain.ModeHousing, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.NotNil(t, candidates)
}

func TestGetCandidates_RangeFilter(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())

	budget := func(v int) func(*domain.Profile) {
		return func(p *domain.Profile) { p.Budget = &v }
	}
	seed(t, store, "cheap", domain.ModeHousing, budget(400))
	seed(t, store, "mid", domain.ModeHousing, budget(800))
	seed(t, store, "steep", domain.ModeHousing, budget(1600))

	candidates, err := uc.GetCandidates(context.Background(), "u1", domain.ModeHousing, map[string]any{
		"budget": map[string]any{"min": 500.0, "max": 1000.0},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid"}, ids(candidates))
}

func TestGetCandidates_ToggleFilter(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())

	smoker := func(v bool) func(*domain.Profile) {
		return func(p *domain.Profile) { p.Smoker = &v }
	}
	seed(t, store, "smoker", domain.ModeFlatmate, smoker(true))
	seed(t, store, "nonsmoker", domain.ModeFlatmate, smoker(false))

	candidates, err := uc.GetCandidates(context.Background(), "u1", domain.ModeFlatmate, map[string]any{
		"smoker": false,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"nonsmoker"}, ids(candidates))
}

func TestGetCandidates_UnknownAndMalformedFiltersIgnored(t *testing.T) {
	store := memory.NewStore()
	uc := NewDiscoveryUseCase(store.Profiles())

	seed(t, store, "u2", domain.ModeFlatmate, nil)

	candidates, err := uc.GetCandidates(context.Background(), "u1", domain.ModeFlatmate, map[string]any{
		"star_sign":   "leo",  // unknown key
		"budget":      "lots", // wrong shape for a range
		"smoker":      42,     // wrong shape for a toggle
		"cleanliness": map[string]any{"min": "high"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, ids(candidates))
}

func TestTranslate_ClampsToDescriptorBounds(t *testing.T) {
	preds := translate(map[string]any{
		"cleanliness": map[string]any{"min": -5.0, "max": 50.0},
	})
	require.Len(t, preds, 1)
	assert.Equal(t, 0.0, *preds[0].Min)
	assert.Equal(t, 10.0, *preds[0].Max)
}
