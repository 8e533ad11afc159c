package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

// UserService implements profile management. Accounts can only be changed by
// their owner.
type UserService struct {
	users    ports.UserRepository
	listings ports.ListingRepository
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, listings ports.ListingRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, listings: listings, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, callerID, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if callerID == "" || callerID != id {
		return nil, domain.Forbidden("You can only update your own account!")
	}

	var patch ports.UserPatch
	if v := strings.TrimSpace(in.Username); v != "" {
		patch.Username = &v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		patch.Email = &v
	}
	if v := strings.TrimSpace(in.Avatar); v != "" {
		patch.Avatar = &v
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		patch.PasswordHash = &h
	}
	if patch.IsEmpty() {
		return nil, domain.Validation("No valid fields provided for update.")
	}

	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes the account. The user's listings are kept and keep pointing
// at the deleted ID.
func (s *UserService) Delete(ctx context.Context, callerID, id string) error {
	if callerID == "" || callerID != id {
		return domain.Forbidden("You can only delete your own account!")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Listings(ctx context.Context, callerID, id string) ([]*domain.Listing, error) {
	if callerID == "" || callerID != id {
		return nil, domain.Forbidden("You can only view your own listings!")
	}

	listings, err := s.listings.FindByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, domain.NotFound("No listings found for the user.")
	}
	return listings, nil
}
