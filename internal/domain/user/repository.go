package user

import "context"

type UserRepository interface {
	// Create inserts a new user. Duplicate email fails with ErrEmailExists.
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// List retrieves users, optionally filtered by department
	List(ctx context.Context, department *string) ([]User, error)

	// ListActive retrieves all active users, for the mark-absent job
	ListActive(ctx context.Context) ([]User, error)
}
