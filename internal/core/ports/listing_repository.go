package ports

import (
	"context"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// ListingQuery is a normalised search request. Zero values mean "no filter"
// for every predicate field.
type ListingQuery struct {
	SearchTerm      string                 // case-insensitive substring on title, description, address
	PropertyType    domain.PropertyType    // exact match when non-empty
	TransactionType domain.TransactionType // exact match when non-empty
	OfferOnly       bool
	FurnishedOnly   bool
	ParkingOnly     bool
	SortField       string // stored field name, always set
	Ascending       bool
	StartIndex      int // >= 0
	Limit           int // >= 1
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	// Create inserts the listing and sets its ID and timestamps.
	Create(ctx context.Context, l *domain.Listing) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// Update overwrites every mutable field of l and refreshes UpdatedAt.
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) error
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error)
	// Search returns one page of listings matching q and the total number of
	// matches regardless of the page window.
	Search(ctx context.Context, q ListingQuery) ([]*domain.Listing, int64, error)
}
