package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// Register creates a new user with a hashed password
	Register(ctx context.Context, email, name, password string) (*User, error)

	// Authenticate verifies email and password and returns the user
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}
