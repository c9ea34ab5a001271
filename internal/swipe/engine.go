// Package swipe implements the client-side discovery session: a queue of
// candidate cards, asynchronous like/dislike dispatch and background
// replenishment before the queue runs dry.
package swipe

import (
	"context"
	"sync"
	"time"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"go.uber.org/zap"
)

// Discovery is the candidate source the engine pulls from.
type Discovery interface {
	GetCandidates(ctx context.Context, sourceID string, mode domain.Mode, filters map[string]any) ([]*domain.Profile, error)
}

// Interactions records swipe outcomes server-side.
type Interactions interface {
	Record(ctx context.Context, sourceID, targetID string, mode domain.Mode, typ domain.InteractionType) (matched bool, err error)
}

// Direction is a swipe gesture.
type Direction int

const (
	DirectionLeft  Direction = iota // dislike
	DirectionRight                  // like
)

func (d Direction) interaction() domain.InteractionType {
	if d == DirectionRight {
		return domain.InteractionLike
	}
	return domain.InteractionDislike
}

const (
	defaultThreshold   = 3
	dispatchBuffer     = 64
	dispatchTimeout    = 10 * time.Second
	replenishTimeout   = 15 * time.Second
	dispatchRetryDelay = 250 * time.Millisecond
)

type dispatchJob struct {
	profile *domain.Profile
	typ     domain.InteractionType
	mode    domain.Mode
}

// Engine drives one user's swipe loop. Swipe never blocks on the network:
// interaction writes flow through a single FIFO worker so they reach the
// server in gesture order, and replenishment runs on its own goroutine.
type Engine struct {
	sourceID     string
	discovery    Discovery
	interactions Interactions
	log          *zap.Logger
	threshold    int

	// OnMatch, when set, is called from the dispatch worker after a like
	// comes back matched.
	OnMatch func(profile *domain.Profile)

	mu          sync.Mutex
	state       State
	mode        domain.Mode
	filters     map[string]any
	cancelFetch context.CancelFunc

	dispatch chan dispatchJob
	closed   chan struct{}
	wg       sync.WaitGroup
}

type Option func(*Engine)

// WithThreshold overrides the queue length at which replenishment starts.
func WithThreshold(n int) Option {
	return func(e *Engine) { e.threshold = n }
}

func NewEngine(sourceID string, discovery Discovery, interactions Interactions, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		sourceID:     sourceID,
		discovery:    discovery,
		interactions: interactions,
		log:          log,
		threshold:    defaultThreshold,
		state:        State{Phase: PhaseIdle, Swiped: map[string]bool{}},
		dispatch:     make(chan dispatchJob, dispatchBuffer),
		closed:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.wg.Add(1)
	go e.dispatchWorker()
	return e
}

// Close drains pending interaction writes and stops the worker.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.cancelFetch != nil {
		e.cancelFetch()
		e.cancelFetch = nil
	}
	e.mu.Unlock()
	close(e.dispatch)
	e.wg.Wait()
	close(e.closed)
}

// State returns a copy of the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.state)
}

// LoadInitial starts a discovery session for mode, cancelling whatever the
// previous session still had in flight. Blocking; callers drive it off the
// UI thread.
func (e *Engine) LoadInitial(ctx context.Context, mode domain.Mode, filters map[string]any) error {
	if !mode.Valid() {
		return domain.Validationf("Mode must be 'housing' or 'flatmate'")
	}

	e.mu.Lock()
	if e.cancelFetch != nil {
		e.cancelFetch()
		e.cancelFetch = nil
	}
	session := e.state.Session + 1
	e.mode = mode
	e.filters = filters
	e.state = Reduce(e.state, LoadStarted{Session: session})
	e.mu.Unlock()

	candidates, err := e.discovery.GetCandidates(ctx, e.sourceID, mode, filters)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Session != session {
		// Another LoadInitial superseded this one while we were fetching.
		return nil
	}
	if err != nil {
		e.state = State{Phase: PhaseIdle, Swiped: map[string]bool{}, Session: session}
		return err
	}
	e.state = Reduce(e.state, Loaded{Session: session, Candidates: candidates})
	return nil
}

// Swipe pops the front card, queues its interaction write in FIFO order
// and, when the visible queue is running low, kicks off one background
// replenishment. It returns the card that was swiped.
func (e *Engine) Swipe(dir Direction) (*domain.Profile, error) {
	e.mu.Lock()
	if e.state.Phase != PhaseReady || len(e.state.Queue) == 0 {
		phase := e.state.Phase
		e.mu.Unlock()
		return nil, domain.Validationf("No card to swipe in phase %q", phase.String())
	}

	front := e.state.Queue[0]
	e.state = Reduce(e.state, Swiped{})
	job := dispatchJob{profile: front, typ: dir.interaction(), mode: e.mode}

	var startReplenish bool
	if len(e.state.Queue) < e.threshold && !e.state.Replenishing {
		e.state = Reduce(e.state, ReplenishStarted{})
		startReplenish = e.state.Replenishing
	}
	session := e.state.Session
	mode := e.mode
	filters := e.filters

	var fetchCtx context.Context
	if startReplenish {
		fetchCtx, e.cancelFetch = context.WithCancel(context.Background())
	}
	e.mu.Unlock()

	e.dispatch <- job
	if startReplenish {
		go e.replenish(fetchCtx, session, mode, filters)
	}
	return front, nil
}

func (e *Engine) replenish(ctx context.Context, session int, mode domain.Mode, filters map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, replenishTimeout)
	defer cancel()

	candidates, err := e.discovery.GetCandidates(ctx, e.sourceID, mode, filters)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = Reduce(e.state, ReplenishFailed{Session: session})
		if ctx.Err() == nil {
			e.log.Warn("replenishment failed", zap.Error(err))
		}
		return
	}
	e.state = Reduce(e.state, Replenished{Session: session, Candidates: candidates})
}

// dispatchWorker sends interaction writes one at a time in the order the
// gestures happened, preserving the server's most-recent-wins overwrite
// semantics. A transient failure gets one retry; after that the card is
// requeued at the front instead of the action being dropped.
func (e *Engine) dispatchWorker() {
	defer e.wg.Done()
	for job := range e.dispatch {
		matched, err := e.recordWithRetry(job)
		if err != nil {
			e.log.Warn("interaction write failed, requeueing card",
				zap.String("target_id", job.profile.UserID),
				zap.String("type", string(job.typ)),
				zap.Error(err),
			)
			e.mu.Lock()
			e.state = Reduce(e.state, RequeueFront{Profile: job.profile})
			e.mu.Unlock()
			continue
		}
		if matched && e.OnMatch != nil {
			e.OnMatch(job.profile)
		}
	}
}

func (e *Engine) recordWithRetry(job dispatchJob) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	matched, err := e.interactions.Record(ctx, e.sourceID, job.profile.UserID, job.mode, job.typ)
	cancel()
	if err == nil || !domain.IsTransient(err) {
		return matched, err
	}

	time.Sleep(dispatchRetryDelay)
	ctx, cancel = context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	return e.interactions.Record(ctx, e.sourceID, job.profile.UserID, job.mode, job.typ)
}
