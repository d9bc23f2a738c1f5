package users

import "errors"

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyTaken is returned when attempting to use a username that belongs to another user
	ErrUsernameAlreadyTaken = errors.New("username already taken")
)
