package swipe

import (
	"testing"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(id string) *domain.Profile {
	return &domain.Profile{UserID: id, DisplayName: id}
}

func cards(ids ...string) []*domain.Profile {
	out := make([]*domain.Profile, 0, len(ids))
	for _, id := range ids {
		out = append(out, card(id))
	}
	return out
}

func queueIDs(s State) []string {
	out := make([]string, 0, len(s.Queue))
	for _, p := range s.Queue {
		out = append(out, p.UserID)
	}
	return out
}

func TestReduce_LoadFlow(t *testing.T) {
	s := State{Phase: PhaseIdle, Swiped: map[string]bool{}}

	s = Reduce(s, LoadStarted{Session: 1})
	assert.Equal(t, PhaseLoading, s.Phase)

	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a", "b")})
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, []string{"a", "b"}, queueIDs(s))
}

func TestReduce_LoadedEmptyIsExhausted(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1})
	assert.Equal(t, PhaseExhausted, s.Phase)
}

func TestReduce_LoadedStaleSessionIgnored(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 2})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("old")})
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Empty(t, s.Queue)
}

func TestReduce_SwipedPopsAndRecords(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a", "b")})

	s = Reduce(s, Swiped{})
	assert.Equal(t, []string{"b"}, queueIDs(s))
	assert.True(t, s.Swiped["a"])
}

func TestReduce_ReplenishDedupesQueueAndSwiped(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a", "b")})
	s = Reduce(s, Swiped{}) // a swiped
	s = Reduce(s, ReplenishStarted{})

	s = Reduce(s, Replenished{Session: 1, Candidates: cards("a", "b", "c")})
	assert.Equal(t, []string{"b", "c"}, queueIDs(s))
	assert.False(t, s.Replenishing)
}

func TestReduce_ReplenishNeverDuplicatesWithinBatch(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a")})
	s = Reduce(s, ReplenishStarted{})

	s = Reduce(s, Replenished{Session: 1, Candidates: cards("b", "b", "c")})
	assert.Equal(t, []string{"a", "b", "c"}, queueIDs(s))
}

func TestReduce_StaleReplenishDiscarded(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a")})
	s = Reduce(s, LoadStarted{Session: 2})
	s = Reduce(s, Loaded{Session: 2, Candidates: cards("x")})

	s = Reduce(s, Replenished{Session: 1, Candidates: cards("stale")})
	assert.Equal(t, []string{"x"}, queueIDs(s))
}

func TestReduce_EmptyReplenishExhausts(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a")})
	s = Reduce(s, Swiped{})
	s = Reduce(s, ReplenishStarted{})

	s = Reduce(s, Replenished{Session: 1})
	assert.Equal(t, PhaseExhausted, s.Phase)
}

func TestReduce_ReplenishFailedKeepsReady(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a", "b")})
	s = Reduce(s, ReplenishStarted{})

	s = Reduce(s, ReplenishFailed{Session: 1})
	assert.Equal(t, PhaseReady, s.Phase)
	assert.False(t, s.Replenishing)
}

func TestReduce_RequeueFrontRestoresCard(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a", "b")})
	s = Reduce(s, Swiped{})

	s = Reduce(s, RequeueFront{Profile: card("a")})
	assert.Equal(t, []string{"a", "b"}, queueIDs(s))
	assert.False(t, s.Swiped["a"])
}

func TestReduce_RequeueFrontRecoversExhausted(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Session: 1})
	s = Reduce(s, Loaded{Session: 1, Candidates: cards("a")})
	s = Reduce(s, Swiped{})
	s = Reduce(s, ReplenishStarted{})
	s = Reduce(s, Replenished{Session: 1})
	require.Equal(t, PhaseExhausted, s.Phase)

	s = Reduce(s, RequeueFront{Profile: card("a")})
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, []string{"a"}, queueIDs(s))
}

func TestReduce_IsPure(t *testing.T) {
	before := Reduce(State{}, LoadStarted{Session: 1})
	before = Reduce(before, Loaded{Session: 1, Candidates: cards("a", "b")})

	_ = Reduce(before, Swiped{})
	assert.Equal(t, []string{"a", "b"}, queueIDs(before))
	assert.Empty(t, before.Swiped)
}
