package domain

import "time"

// Interaction is a directed like/dislike edge. At most one row exists per
// (source_id, target_id, mode); a repeated action overwrites type and
// timestamp instead of inserting a duplicate.
type Interaction struct {
	SourceID  string          `json:"source_id" db:"source_id"`
	TargetID  string          `json:"target_id" db:"target_id"`
	Mode      Mode            `json:"mode" db:"mode"`
	Type      InteractionType `json:"type" db:"type"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
