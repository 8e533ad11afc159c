package ports

import (
	"context"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// UserPatch carries the profile fields a user may change. Nil fields are left
// untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	Avatar       *string
	PasswordHash *string
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Avatar == nil && p.PasswordHash == nil
}

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts the user and returns it with its generated ID. A
	// duplicate email or username yields a domain.ErrConflict error.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
