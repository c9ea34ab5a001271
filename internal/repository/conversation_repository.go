package repository

import (
	"context"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
)

type ConversationRepository interface {
	GetByConnection(ctx context.Context, connectionID string) (*domain.Conversation, error)
	// ListMessages returns the thread ordered sent_at ascending, message id
	// breaking ties.
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	LatestMessage(ctx context.Context, conversationID string) (*domain.Message, error)
}
