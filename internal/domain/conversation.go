package domain

import (
	"sort"
	"time"
)

// Conversation is the thread attached to a connection. Message delivery is
// owned by chat infrastructure; this is the read-side shape only.
type Conversation struct {
	ID           string    `json:"id" db:"id"`
	ConnectionID string    `json:"connection_id" db:"connection_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Message struct {
	ID             string    `json:"message_id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	SenderID       string    `json:"sender" db:"sender_id"`
	Content        string    `json:"content" db:"content"`
	SentAt         time.Time `json:"sent_at" db:"sent_at"`
}

// SortMessages orders messages by sent_at ascending, message id breaking
// ties so the order is total.
func SortMessages(msgs []Message) {
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].SentAt.Equal(msgs[j].SentAt) {
			return msgs[i].SentAt.Before(msgs[j].SentAt)
		}
		return msgs[i].ID < msgs[j].ID
	})
}
