package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DylanL0ng/student-housing-sub001/internal/domain"
	"github.com/DylanL0ng/student-housing-sub001/internal/repository"
	"github.com/jmoiron/sqlx"
)

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByConnection(ctx context.Context, connectionID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `SELECT id, connection_id, created_at FROM conversations WHERE connection_id = $1`
	err := r.db.GetContext(ctx, &conv, query, connectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "conversation"}
		}
		return nil, wrapStorage("get conversation", err)
	}
	return &conv, nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	var msgs []domain.Message
	query := `
		SELECT id, conversation_id, sender_id, content, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at ASC, id ASC
	`
	if err := r.db.SelectContext(ctx, &msgs, query, conversationID); err != nil {
		return nil, wrapStorage("list messages", err)
	}
	return msgs, nil
}

func (r *conversationRepository) LatestMessage(ctx context.Context, conversationID string) (*domain.Message, error) {
	var msg domain.Message
	query := `
		SELECT id, conversation_id, sender_id, content, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &msg, query, conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "message"}
		}
		return nil, wrapStorage("latest message", err)
	}
	return &msg, nil
}
