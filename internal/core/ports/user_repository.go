package ports

import (
	"context"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
)

// UserRepository defines persistence operations for authentication principals.
// Emails are stored lowercased; the collection carries a unique index on email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update persists mutable fields (name, email, password hash, employee link).
	Update(ctx context.Context, user *domain.User) error
}
