package ports

import (
	"context"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// UpdateUserInput carries the optional profile changes. Empty strings are
// treated as "not provided".
type UpdateUserInput struct {
	Username string
	Email    string
	Avatar   string
	Password string
}

// UserService defines profile operations. Every mutating call takes the
// verified caller ID and enforces self-ownership.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, callerID, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, callerID, id string) error
	Listings(ctx context.Context, callerID, id string) ([]*domain.Listing, error)
}
