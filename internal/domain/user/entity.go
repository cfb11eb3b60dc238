package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Full access, settings, on-behalf operations
	RoleManager Role = "manager" // Department reports and on-behalf operations
	RoleUser    Role = "user"    // Regular employee
)

type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	Department      *string
	Position        *string
	IsActive        bool
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanActFor checks if user may check another user in or out
func (u *User) CanActFor() bool {
	return u.IsManager()
}
