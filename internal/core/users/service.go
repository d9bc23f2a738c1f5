package users

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Username validation regex
// Usernames must: start with a letter, contain only letters, digits, dots,
// hyphens and underscores, and end with a letter or digit
var usernameRegex = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9._-]*[a-zA-Z0-9])?$`)

type userService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUserByID retrieves a user by their numeric identifier
func (s *userService) GetUserByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("user id must be positive")
	}

	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername retrieves a user by their username
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	// Reject obviously malformed usernames without touching the database
	if len(username) > 64 || !usernameRegex.MatchString(username) {
		return nil, ErrUserNotFound
	}

	return s.userRepo.GetByUsername(ctx, username)
}
