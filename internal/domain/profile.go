package domain

import "time"

// Profile is the mode-specific discovery card for a user. A user has at
// most one profile per mode, keyed (user_id, mode).
type Profile struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Mode        Mode      `json:"mode" db:"mode"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Bio         *string   `json:"bio" db:"bio"`
	City        *string   `json:"city" db:"city"`
	Media       []string  `json:"media" db:"media"`
	Budget      *int      `json:"budget" db:"budget"`
	Cleanliness *float64  `json:"cleanliness" db:"cleanliness"`
	SocialLevel *float64  `json:"social_level" db:"social_level"`
	Smoker      *bool     `json:"smoker" db:"smoker"`
	HasPets     *bool     `json:"has_pets" db:"has_pets"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MinimalProfile is the subset needed for a conversation-list row.
type MinimalProfile struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Media       *string `json:"media,omitempty"`
}

// Minimal projects the profile down to its conversation-row fields.
func (p *Profile) Minimal() MinimalProfile {
	m := MinimalProfile{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
	}
	if len(p.Media) > 0 {
		m.Media = &p.Media[0]
	}
	return m
}
