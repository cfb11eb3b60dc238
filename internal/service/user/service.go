package user

import (
	"context"
	"fmt"

	"github.com/absenta/attendance-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	created, err := s.UserRepository.Create(ctx, user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &passwordHash,
		Role:         user.Role(req.Role),
		Department:   req.Department,
		Position:     req.Position,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.MapUserToResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, department *string) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.MapUserToResponse(u))
	}
	return responses, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.MapUserToResponse(u), nil
}
