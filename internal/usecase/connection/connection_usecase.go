package connection

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
)

type ConnectionUseCase struct {
	connectionRepo   repository.ConnectionRepository
	profileRepo      repository.ProfileRepository
	conversationRepo repository.ConversationRepository
}

func NewConnectionUseCase(
	connectionRepo repository.ConnectionRepository,
	profileRepo repository.ProfileRepository,
	conversationRepo repository.ConversationRepository,
) *ConnectionUseCase {
	return &ConnectionUseCase{
		connectionRepo:   connectionRepo,
		profileRepo:      profileRepo,
		conversationRepo: conversationRepo,
	}
}

// Entry is one row of the conversation list: the peer's profile (minimal
// or full), the connection metadata and, when the thread already exists,
// the latest message as a preview.
type Entry struct {
	Connection  *domain.Connection     `json:"connection"`
	Peer        *domain.MinimalProfile `json:"peer,omitempty"`
	PeerProfile *domain.Profile        `json:"peer_profile,omitempty"`
	LastMessage *domain.Message        `json:"last_message,omitempty"`
}

// List returns the user's connections ordered by connection created_at
// descending (most recent match first). A peer whose profile can no longer
// be loaded is skipped rather than returned half-formed.
func (uc *ConnectionUseCase) List(ctx context.Context, userID string, mode domain.Mode, minimal bool) ([]*Entry, error) {
	if userID == "" {
		return nil, domain.Validationf("User ID is required")
	}
	if mode != "" && !mode.Valid() {
		return nil, domain.Validationf("Mode must be 'housing' or 'flatmate'")
	}

	conns, err := uc.connectionRepo.ListForUser(ctx, userID, mode)
	if err != nil {
		if domain.IsNotFound(err) {
			return []*Entry{}, nil
		}
		return nil, err
	}

	entries := make([]*Entry, 0, len(conns))
	for _, conn := range conns {
		peerID, ok := conn.PeerOf(userID)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByUserAndMode(ctx, peerID, conn.Mode)
		if err != nil {
			continue
		}

		entry := &Entry{Connection: conn}
		if minimal {
			m := profile.Minimal()
			entry.Peer = &m
		} else {
			entry.PeerProfile = profile
		}

		if conv, err := uc.conversationRepo.GetByConnection(ctx, conn.ID); err == nil {
			if msg, err := uc.conversationRepo.LatestMessage(ctx, conv.ID); err == nil {
				entry.LastMessage = msg
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Thread returns the ordered message list for one connection, for the
// chat screen's initial render.
func (uc *ConnectionUseCase) Thread(ctx context.Context, userID, connectionID string) ([]domain.Message, error) {
	if userID == "" {
		return nil, domain.Validationf("User ID is required")
	}
	if connectionID == "" {
		return nil, domain.Validationf("Connection ID is required")
	}

	conv, err := uc.conversationRepo.GetByConnection(ctx, connectionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return []domain.Message{}, nil
		}
		return nil, err
	}
	msgs, err := uc.conversationRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	domain.SortMessages(msgs)
	return msgs, nil
}
