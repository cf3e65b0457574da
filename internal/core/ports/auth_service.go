package ports

import (
	"context"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // defaults to "user" when empty
	// EmployeeID optionally links the account to an existing directory
	// record. When empty an Employee is found or created by email.
	EmployeeID string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// EmployeeSummary is the populated assignee/link projection embedded in
// responses. It intentionally omits phone and timestamps.
type EmployeeSummary struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Role       domain.EmployeeRole `json:"role"`
	Department domain.Department   `json:"department"`
	AvatarURL  string              `json:"avatar_url,omitempty"`
}

// MeResult is the current-user view with the linked employee populated.
type MeResult struct {
	User     *domain.User
	Employee *EmployeeSummary // nil when the account has no link yet
}

// AuthService implements registration, login and account self-service.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*MeResult, error)
	UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// IdentityService resolves the Employee record representing a User for
// task-scoping purposes, creating and linking one when absent.
type IdentityService interface {
	// EnsureEmployeeLink is idempotent: after the first successful call it
	// always returns the same employee for the same user. It may persist a
	// new employee link on the user as a side effect.
	EnsureEmployeeLink(ctx context.Context, userID string) (*domain.Employee, error)
}
