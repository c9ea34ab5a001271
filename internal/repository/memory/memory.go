// Package memory holds map-backed implementations of the repository
// interfaces. They behave like the Postgres versions including the
// uniqueness semantics, which makes them usable for tests and for running
// the server without external storage.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
	"github.com/google/uuid"
)

type pairKey struct {
	a, b string
	mode domain.Mode
}

type edgeKey struct {
	source, target string
	mode           domain.Mode
}

type profileKey struct {
	userID string
	mode   domain.Mode
}

// Store is the shared backing state; the per-interface repositories are
// views over it so cross-entity invariants (promotion) stay in one place.
type Store struct {
	mu            sync.Mutex
	users         map[string]*domain.User
	profiles      map[profileKey]*domain.Profile
	interactions  map[edgeKey]*domain.Interaction
	connections   map[pairKey]*domain.Connection
	conversations map[string]*domain.Conversation // by connection id
	messages      map[string][]domain.Message     // by conversation id
	seq           int
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]*domain.User),
		profiles:      make(map[profileKey]*domain.Profile),
		interactions:  make(map[edgeKey]*domain.Interaction),
		connections:   make(map[pairKey]*domain.Connection),
		conversations: make(map[string]*domain.Conversation),
		messages:      make(map[string][]domain.Message),
	}
}

func (s *Store) Users() repository.UserRepository               { return (*userRepo)(s) }
func (s *Store) Profiles() repository.ProfileRepository         { return (*profileRepo)(s) }
func (s *Store) Interactions() repository.InteractionRepository { return (*interactionRepo)(s) }
func (s *Store) Connections() repository.ConnectionRepository   { return (*connectionRepo)(s) }
func (s *Store) Conversations() repository.ConversationRepository {
	return (*conversationRepo)(s)
}

// next produces strictly increasing timestamps so created_at ordering is
// deterministic even within one wall-clock tick.
func (s *Store) next() time.Time {
	s.seq++
	return time.Unix(0, int64(s.seq)*int64(time.Millisecond)).UTC()
}

// SeedConversation attaches a conversation with messages to a connection.
func (s *Store) SeedConversation(connectionID string, msgs []domain.Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := &domain.Conversation{
		ID:           uuid.NewString(),
		ConnectionID: connectionID,
		CreatedAt:    s.next(),
	}
	s.conversations[connectionID] = conv
	s.messages[conv.ID] = msgs
	return conv.ID
}

type userRepo Store

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "user"}
	}
	u := *user
	return &u, nil
}

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	user.CreatedAt = s.next()
	u := *user
	s.users[user.ID] = &u
	return nil
}

type profileRepo Store

func (r *profileRepo) Create(_ context.Context, profile *domain.Profile) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.CreatedAt = s.next()
	profile.UpdatedAt = profile.CreatedAt
	p := *profile
	s.profiles[profileKey{profile.UserID, profile.Mode}] = &p
	return nil
}

func (r *profileRepo) Update(_ context.Context, profile *domain.Profile) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	key := profileKey{profile.UserID, profile.Mode}
	if _, ok := s.profiles[key]; !ok {
		return &domain.NotFoundError{Entity: "profile"}
	}
	profile.UpdatedAt = s.next()
	p := *profile
	s.profiles[key] = &p
	return nil
}

func (r *profileRepo) GetByUserAndMode(_ context.Context, userID string, mode domain.Mode) (*domain.Profile, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[profileKey{userID, mode}]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "profile"}
	}
	p := *profile
	return &p, nil
}

func (r *profileRepo) GetCandidates(_ context.Context, sourceID string, mode domain.Mode, preds []repository.CandidatePredicate, limit int) ([]*domain.Profile, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Profile
	for key, profile := range s.profiles {
		if key.mode != mode || key.userID == sourceID {
			continue
		}
		if _, interacted := s.interactions[edgeKey{sourceID, key.userID, mode}]; interacted {
			continue
		}
		if !matches(profile, preds) {
			continue
		}
		p := *profile
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matches(p *domain.Profile, preds []repository.CandidatePredicate) bool {
	for _, pred := range preds {
		if pred.Equals != nil {
			b := boolField(p, pred.Field)
			if b == nil || *b != *pred.Equals {
				return false
			}
		}
		if pred.Min != nil || pred.Max != nil {
			v := numericField(p, pred.Field)
			if v == nil {
				return false
			}
			if pred.Min != nil && *v < *pred.Min {
				return false
			}
			if pred.Max != nil && *v > *pred.Max {
				return false
			}
		}
	}
	return true
}

func boolField(p *domain.Profile, field string) *bool {
	switch field {
	case "smoker":
		return p.Smoker
	case "has_pets":
		return p.HasPets
	}
	return nil
}

func numericField(p *domain.Profile, field string) *float64 {
	switch field {
	case "budget":
		if p.Budget == nil {
			return nil
		}
		v := float64(*p.Budget)
		return &v
	case "cleanliness":
		return p.Cleanliness
	case "social_level":
		return p.SocialLevel
	}
	return nil
}

type interactionRepo Store

func (r *interactionRepo) Upsert(_ context.Context, in *domain.Interaction) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(in)
	return nil
}

func (s *Store) upsertLocked(in *domain.Interaction) {
	in.CreatedAt = s.next()
	stored := *in
	s.interactions[edgeKey{in.SourceID, in.TargetID, in.Mode}] = &stored
}

func (r *interactionRepo) Get(_ context.Context, sourceID, targetID string, mode domain.Mode) (*domain.Interaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.interactions[edgeKey{sourceID, targetID, mode}]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "interaction"}
	}
	copied := *in
	return &copied, nil
}

func (r *interactionRepo) LikesReceived(_ context.Context, userID string, mode domain.Mode) ([]*domain.Interaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Interaction
	for key, in := range s.interactions {
		if key.target != userID || key.mode != mode || in.Type != domain.InteractionLike {
			continue
		}
		if rev, ok := s.interactions[edgeKey{userID, key.source, mode}]; ok && rev.Type == domain.InteractionLike {
			continue
		}
		copied := *in
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpsertAndPromote serializes on the store mutex, which subsumes the
// per-pair lock the Postgres implementation takes.
func (r *interactionRepo) UpsertAndPromote(_ context.Context, in *domain.Interaction) (*domain.Connection, bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertLocked(in)

	rev, ok := s.interactions[edgeKey{in.TargetID, in.SourceID, in.Mode}]
	if !ok || rev.Type != domain.InteractionLike {
		return nil, false, nil
	}

	userA, userB := domain.CanonicalPair(in.SourceID, in.TargetID)
	key := pairKey{userA, userB, in.Mode}
	if existing, ok := s.connections[key]; ok {
		copied := *existing
		return &copied, true, nil
	}

	conn := &domain.Connection{
		ID:        uuid.NewString(),
		UserA:     userA,
		UserB:     userB,
		Mode:      in.Mode,
		CreatedAt: s.next(),
	}
	s.connections[key] = conn
	copied := *conn
	return &copied, true, nil
}

type connectionRepo Store

func (r *connectionRepo) GetByPair(_ context.Context, userA, userB string, mode domain.Mode) (*domain.Connection, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	userA, userB = domain.CanonicalPair(userA, userB)
	conn, ok := s.connections[pairKey{userA, userB, mode}]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "connection"}
	}
	copied := *conn
	return &copied, nil
}

func (r *connectionRepo) ListForUser(_ context.Context, userID string, mode domain.Mode) ([]*domain.Connection, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Connection
	for key, conn := range s.connections {
		if mode != "" && key.mode != mode {
			continue
		}
		if !conn.HasUser(userID) {
			continue
		}
		copied := *conn
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type conversationRepo Store

func (r *conversationRepo) GetByConnection(_ context.Context, connectionID string) (*domain.Conversation, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[connectionID]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "conversation"}
	}
	copied := *conv
	return &copied, nil
}

func (r *conversationRepo) ListMessages(_ context.Context, conversationID string) ([]domain.Message, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append([]domain.Message{}, s.messages[conversationID]...)
	domain.SortMessages(msgs)
	return msgs, nil
}

func (r *conversationRepo) LatestMessage(_ context.Context, conversationID string) (*domain.Message, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append([]domain.Message{}, s.messages[conversationID]...)
	if len(msgs) == 0 {
		return nil, &domain.NotFoundError{Entity: "message"}
	}
	domain.SortMessages(msgs)
	msg := msgs[len(msgs)-1]
	return &msg, nil
}
