package swipe

import "github.com/DylanL0ng/student-housing-sub001/internal/domain"

// Phase is the engine's lifecycle position. Exhausted is reached only when
// a replenishment returns empty without error, and is recoverable through
// a fresh load.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// State is the engine's entire client-side session state. Reduce treats it
// as immutable; every transition returns a fresh value so transitions stay
// trivially testable.
type State struct {
	Phase        Phase
	Queue        []*domain.Profile
	Swiped       map[string]bool
	Replenishing bool
	Session      int
}

// Event is a state-transition input.
type Event interface{ isEvent() }

// LoadStarted begins a fresh discovery session, dropping any queue and
// swipe history from the previous one.
type LoadStarted struct{ Session int }

// Loaded delivers the initial candidate page for a session.
type Loaded struct {
	Session    int
	Candidates []*domain.Profile
}

// Swiped pops the front card.
type Swiped struct{}

// ReplenishStarted marks a background fetch in flight.
type ReplenishStarted struct{}

// Replenished appends a background fetch's results. Stale sessions and
// duplicates are discarded here.
type Replenished struct {
	Session    int
	Candidates []*domain.Profile
}

// ReplenishFailed clears the in-flight flag without touching the queue.
type ReplenishFailed struct{ Session int }

// RequeueFront puts a card whose interaction write ultimately failed back
// at the head of the queue so the user can repeat the action.
type RequeueFront struct{ Profile *domain.Profile }

func (LoadStarted) isEvent()      {}
func (Loaded) isEvent()           {}
func (Swiped) isEvent()           {}
func (ReplenishStarted) isEvent() {}
func (Replenished) isEvent()      {}
func (ReplenishFailed) isEvent()  {}
func (RequeueFront) isEvent()     {}

// Reduce is the pure transition function (state, event) -> state.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case LoadStarted:
		return State{
			Phase:   PhaseLoading,
			Swiped:  map[string]bool{},
			Session: ev.Session,
		}

	case Loaded:
		if ev.Session != s.Session || s.Phase != PhaseLoading {
			return s
		}
		next := clone(s)
		next.Queue = dedupe(nil, s.Swiped, ev.Candidates)
		if len(next.Queue) == 0 {
			next.Phase = PhaseExhausted
		} else {
			next.Phase = PhaseReady
		}
		return next

	case Swiped:
		if s.Phase != PhaseReady || len(s.Queue) == 0 {
			return s
		}
		next := clone(s)
		front := next.Queue[0]
		next.Queue = append([]*domain.Profile{}, next.Queue[1:]...)
		next.Swiped[front.UserID] = true
		return next

	case ReplenishStarted:
		if s.Phase != PhaseReady || s.Replenishing {
			return s
		}
		next := clone(s)
		next.Replenishing = true
		return next

	case Replenished:
		if ev.Session != s.Session {
			// Result from a cancelled session context; discard, not merge.
			return s
		}
		next := clone(s)
		next.Replenishing = false
		next.Queue = dedupe(next.Queue, next.Swiped, ev.Candidates)
		if len(next.Queue) == 0 {
			next.Phase = PhaseExhausted
		}
		return next

	case ReplenishFailed:
		if ev.Session != s.Session {
			return s
		}
		next := clone(s)
		next.Replenishing = false
		return next

	case RequeueFront:
		next := clone(s)
		next.Queue = append([]*domain.Profile{ev.Profile}, next.Queue...)
		delete(next.Swiped, ev.Profile.UserID)
		if next.Phase == PhaseExhausted {
			next.Phase = PhaseReady
		}
		return next
	}
	return s
}

func clone(s State) State {
	next := s
	next.Queue = append([]*domain.Profile{}, s.Queue...)
	next.Swiped = make(map[string]bool, len(s.Swiped))
	for id := range s.Swiped {
		next.Swiped[id] = true
	}
	return next
}

// dedupe appends candidates not already queued or swiped this session.
// Discovery's server-side exclusion is only consistent as of query time,
// so the client filters again.
func dedupe(queue []*domain.Profile, swiped map[string]bool, candidates []*domain.Profile) []*domain.Profile {
	seen := make(map[string]bool, len(queue)+len(swiped))
	for _, p := range queue {
		seen[p.UserID] = true
	}
	for id := range swiped {
		seen[id] = true
	}
	out := queue
	for _, c := range candidates {
		if seen[c.UserID] {
			continue
		}
		seen[c.UserID] = true
		out = append(out, c)
	}
	return out
}
