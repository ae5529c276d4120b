package user

import "time"

// User is an API account. PasswordHash is a bcrypt hash and is never rendered.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	CreatedAt    time.Time
}
