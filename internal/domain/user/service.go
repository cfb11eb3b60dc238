package user

import "context"

type UserService interface {
	// Create registers a new user account (admin operation)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// List retrieves users, optionally filtered by department
	List(ctx context.Context, department *string) ([]UserResponse, error)

	// Get retrieves a single user by ID
	Get(ctx context.Context, id string) (UserResponse, error)
}
