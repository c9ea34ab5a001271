package domain

import "time"

// Connection is the derived mutual-match pairing. Rows are stored with
// UserA < UserB so (a,b) and (b,a) hit the same uniqueness constraint;
// clients never create one directly.
type Connection struct {
	ID        string    `json:"id" db:"id"`
	UserA     string    `json:"user_a" db:"user_a"`
	UserB     string    `json:"user_b" db:"user_b"`
	Mode      Mode      `json:"mode" db:"mode"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CanonicalPair orders two user ids into the stored (UserA, UserB) form.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (c *Connection) HasUser(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

func (c *Connection) PeerOf(userID string) (string, bool) {
	if c.UserA == userID {
		return c.UserB, true
	}
	if c.UserB == userID {
		return c.UserA, true
	}
	return "", false
}
