package users

import (
	"time"
)

// User represents an account that can author posts. Accounts are provisioned
// out of band (seed data or ops tooling); the API never creates them.
type User struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	ID        int64     `json:"id" db:"id"`
}

// Credentials carries the stored password hash alongside the user record.
// Only the auth service reads this; it is never serialized to clients.
type Credentials struct {
	User         User
	PasswordHash string
}
