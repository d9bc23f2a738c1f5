package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	Create(ctx context.Context, user *User, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetCredentials retrieves a user together with their stored password
	// hash. Used only by the authentication service during login.
	GetCredentials(ctx context.Context, username string) (*Credentials, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
