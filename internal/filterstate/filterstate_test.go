package filterstate

import (
	"context"
	"testing"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetAndGetAll(t *testing.T) {
	store := memory.NewFilterStore()
	state := New(store, "u1", domain.ModeFlatmate)
	ctx := context.Background()

	require.NoError(t, state.Set(ctx, "smoker", false))
	require.NoError(t, state.Set(ctx, "budget", domain.RangeValue{Min: 300, Max: 900}))

	v, ok := state.Get(ctx, "smoker")
	require.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = state.Get(ctx, "has_pets")
	assert.False(t, ok)

	all := state.GetAll(ctx)
	assert.Len(t, all, 2)
	assert.Equal(t, domain.RangeValue{Min: 300, Max: 900}, all["budget"])
}

func TestSetRejectsUnknownKey(t *testing.T) {
	state := New(memory.NewFilterStore(), "u1", domain.ModeFlatmate)

	err := state.Set(context.Background(), "star_sign", true)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestValuesSurviveRestart(t *testing.T) {
	store := memory.NewFilterStore()
	ctx := context.Background()

	first := New(store, "u1", domain.ModeHousing)
	require.NoError(t, first.Set(ctx, "has_pets", true))

	// A fresh State over the same store stands in for a process restart.
	second := New(store, "u1", domain.ModeHousing)
	v, ok := second.Get(ctx, "has_pets")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestStatesArePartitionedByUserAndMode(t *testing.T) {
	store := memory.NewFilterStore()
	ctx := context.Background()

	require.NoError(t, New(store, "u1", domain.ModeHousing).Set(ctx, "smoker", true))

	_, ok := New(store, "u2", domain.ModeHousing).Get(ctx, "smoker")
	assert.False(t, ok)
	_, ok = New(store, "u1", domain.ModeFlatmate).Get(ctx, "smoker")
	assert.False(t, ok)
}

func TestObserversGetFullSnapshotSynchronously(t *testing.T) {
	state := New(memory.NewFilterStore(), "u1", domain.ModeFlatmate)
	ctx := context.Background()

	var snapshots []map[string]any
	unsubscribe := state.Subscribe(func(snapshot map[string]any) {
		snapshots = append(snapshots, snapshot)
	})

	require.NoError(t, state.Set(ctx, "smoker", false))
	require.NoError(t, state.Set(ctx, "has_pets", true))

	require.Len(t, snapshots, 2)
	assert.Equal(t, map[string]any{"smoker": false}, snapshots[0])
	assert.Equal(t, map[string]any{"smoker": false, "has_pets": true}, snapshots[1])

	unsubscribe()
	require.NoError(t, state.Set(ctx, "smoker", true))
	assert.Len(t, snapshots, 2)
}

func TestClearNotifiesWithEmptyMapping(t *testing.T) {
	state := New(memory.NewFilterStore(), "u1", domain.ModeFlatmate)
	ctx := context.Background()

	require.NoError(t, state.Set(ctx, "smoker", true))

	var last map[string]any
	state.Subscribe(func(snapshot map[string]any) { last = snapshot })

	require.NoError(t, state.Clear(ctx))
	require.NotNil(t, last)
	assert.Empty(t, last)
	assert.Empty(t, state.GetAll(ctx))
}
