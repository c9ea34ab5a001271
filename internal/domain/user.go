package domain

import "time"

// User is the identity record owned by the identity provider. Everything
// else references it by id only.
type User struct {
	ID          string    `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Location    *string   `json:"location" db:"location"`
	Interests   []string  `json:"interests" db:"interests"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (u *User) Age() int {
	now := time.Now()
	age := now.Year() - u.DateOfBirth.Year()
	if now.YearDay() < u.DateOfBirth.YearDay() {
		age--
	}
	return age
}
