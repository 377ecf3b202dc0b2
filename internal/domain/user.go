package domain

import "time"

// User represents an authenticated game master. It doubles as the profile
// record other entities reference through UserID.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
