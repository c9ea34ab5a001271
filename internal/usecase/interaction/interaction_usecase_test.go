package interaction

import (
	"context"
	"sync"
	"testing"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUseCase(t *testing.T) (*InteractionUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := NewInteractionUseCase(store.Interactions(), store.Profiles(), zap.NewNop())
	return uc, store
}

func seedProfile(t *testing.T, store *memory.Store, userID string, mode domain.Mode) {
	t.Helper()
	err := store.Profiles().Create(context.Background(), &domain.Profile{
		UserID:      userID,
		Mode:        mode,
		DisplayName: userID,
		Media:       []string{userID + ".jpg"},
	})
	require.NoError(t, err)
}

func TestRecord_Validation(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		source  string
		target  string
		mode    domain.Mode
		typ     domain.InteractionType
		wantMsg string
	}{
		{"missing source", "", "u2", domain.ModeFlatmate, domain.InteractionLike, "Source ID is required"},
		{"missing target", "u1", "", domain.ModeFlatmate, domain.InteractionLike, "Target ID is required"},
		{"invalid type", "u1", "u2", domain.ModeFlatmate, "maybe", "Type must be 'like' or 'dislike'"},
		{"invalid mode", "u1", "u2", "dating", domain.InteractionLike, "Mode must be 'housing' or 'flatmate'"},
		{"self interaction", "u1", "u1", domain.ModeFlatmate, domain.InteractionLike, "Cannot interact with your own profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Record(ctx, tt.source, tt.target, tt.mode, tt.typ)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestRecord_LikeWithoutReciprocal(t *testing.T) {
	uc, store := newUseCase(t)
	seedProfile(t, store, "u2", domain.ModeFlatmate)

	result, err := uc.Record(context.Background(), "u1", "u2", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Nil(t, result.Connection)
}

func TestRecord_MutualLikePromotes(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	seedProfile(t, store, "u1", domain.ModeFlatmate)
	seedProfile(t, store, "u2", domain.ModeFlatmate)

	first, err := uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)
	assert.False(t, first.Matched)

	second, err := uc.Record(ctx, "u2", "u1", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)
	require.True(t, second.Matched)
	require.NotNil(t, second.Connection)
	assert.Equal(t, "u1", second.Connection.UserA)
	assert.Equal(t, "u2", second.Connection.UserB)
	require.NotNil(t, second.Peer)
	assert.Equal(t, "u1", second.Peer.UserID)

	conn, err := store.Connections().GetByPair(ctx, "u2", "u1", domain.ModeFlatmate)
	require.NoError(t, err)
	assert.Equal(t, second.Connection.ID, conn.ID)
}

func TestRecord_ModesArePartitioned(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	seedProfile(t, store, "u1", domain.ModeHousing)
	seedProfile(t, store, "u2", domain.ModeFlatmate)

	_, err := uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)

	// The reverse like lands under a different mode, so no promotion.
	result, err := uc.Record(ctx, "u2", "u1", domain.ModeHousing, domain.InteractionLike)
	require.NoError(t, err)
	assert.False(t, result.Matched)
}

func TestRecord_RepeatedLikeIsIdempotent(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	seedProfile(t, store, "u1", domain.ModeFlatmate)
	seedProfile(t, store, "u2", domain.ModeFlatmate)

	_, err := uc.Record(ctx, "u2", "u1", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)

	first, err := uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)
	require.True(t, first.Matched)

	// Retrying the same like reports the same connection, not a second one.
	second, err := uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)
	require.True(t, second.Matched)
	assert.Equal(t, first.Connection.ID, second.Connection.ID)

	conns, err := store.Connections().ListForUser(ctx, "u1", domain.ModeFlatmate)
	require.NoError(t, err)
	assert.Len(t, conns, 1)
}

func TestRecord_OverwriteChangesType(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)

	_, err = uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionDislike)
	require.NoError(t, err)

	in, err := store.Interactions().Get(ctx, "u1", "u2", domain.ModeFlatmate)
	require.NoError(t, err)
	assert.Equal(t, domain.InteractionDislike, in.Type)
}

func TestRecord_DislikeNeverPromotes(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Record(ctx, "u2", "u1", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)

	result, err := uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionDislike)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	_, err = store.Connections().GetByPair(ctx, "u1", "u2", domain.ModeFlatmate)
	assert.True(t, domain.IsNotFound(err))
}

func TestRecord_DislikeDoesNotDeleteConnection(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	seedProfile(t, store, "u1", domain.ModeFlatmate)
	seedProfile(t, store, "u2", domain.ModeFlatmate)

	_, err := uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)
	result, err := uc.Record(ctx, "u2", "u1", domain.ModeFlatmate, domain.InteractionLike)
	require.NoError(t, err)
	require.True(t, result.Matched)

	_, err = uc.Record(ctx, "u1", "u2", domain.ModeFlatmate, domain.InteractionDislike)
	require.NoError(t, err)

	_, err = store.Connections().GetByPair(ctx, "u1", "u2", domain.ModeFlatmate)
	assert.NoError(t, err)
}

func TestRecord_ConcurrentMutualLikes(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	seedProfile(t, store, "u1", domain.ModeFlatmate)
	seedProfile(t, store, "u2", domain.ModeFlatmate)

	var wg sync.WaitGroup
	var matchedCount int
	var mu sync.Mutex

	for i := 0; i < 2; i++ {
		source, target := "u1", "u2"
		if i == 1 {
			source, target = "u2", "u1"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := uc.Record(ctx, source, target, domain.ModeFlatmate, domain.InteractionLike)
			require.NoError(t, err)
			mu.Lock()
			if result.Matched {
				matchedCount++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Whatever the interleaving, exactly one connection exists and at least
	// the second writer observed the match.
	conns, err := store.Connections().ListForUser(ctx, "u1", domain.ModeFlatmate)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.GreaterOrEqual(t, matchedCount, 1)
}
