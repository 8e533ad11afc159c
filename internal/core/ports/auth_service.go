package ports

import (
	"context"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// AuthService issues and verifies session tokens.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	Signin(ctx context.Context, email, password string) (string, *domain.User, error)
	// FederatedSignin trusts an identity already verified by an external
	// provider, creating the account on first use.
	FederatedSignin(ctx context.Context, email, displayName, photoURL string) (string, *domain.User, error)
	// Verify returns the user ID embedded in a valid token.
	Verify(token string) (string, error)
}
