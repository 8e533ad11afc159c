package ports

import (
	"context"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// CreateListingInput carries a fully populated listing from the transport
// layer. Presence of every field has already been checked.
type CreateListingInput struct {
	Title           string
	Description     string
	Address         string
	RegularPrice    float64
	DiscountPrice   float64
	Bathrooms       int
	Bedrooms        int
	Furnished       bool
	Parking         bool
	PropertyType    string
	TransactionType string
	Offer           bool
	ImageURLs       []string
}

// UpdateListingInput is a partial update. Nil fields keep their stored value.
// Owner and ID cannot be patched.
type UpdateListingInput struct {
	Title           *string
	Description     *string
	Address         *string
	RegularPrice    *float64
	DiscountPrice   *float64
	Bathrooms       *int
	Bedrooms        *int
	Furnished       *bool
	Parking         *bool
	PropertyType    *string
	TransactionType *string
	Offer           *bool
	ImageURLs       []string
}

// ListListingsInput holds the raw query-string values of a search request.
// Parsing and defaulting happen in the service so that malformed numbers fall
// back to defaults instead of failing.
type ListListingsInput struct {
	SearchTerm      string
	PropertyType    string
	TransactionType string
	Offer           string
	Furnished       string
	Parking         string
	Sort            string
	Order           string
	StartIndex      string
	Limit           string
}

// ListingPage is one window of search results plus the counters the client
// needs for infinite scroll.
type ListingPage struct {
	Items      []*domain.Listing
	Total      int64
	Returned   int
	Remaining  int64
	HasMore    bool
	StartIndex int
	Limit      int
}

// HomepageListings groups the newest listings shown on the landing page.
type HomepageListings struct {
	Offer     []*domain.Listing `json:"offer"`
	Rent      []*domain.Listing `json:"rent"`
	Sale      []*domain.Listing `json:"sale"`
	Lease     []*domain.Listing `json:"lease"`
	ShortTerm []*domain.Listing `json:"shortTerm"`
	LongTerm  []*domain.Listing `json:"longTerm"`
}

// HomepageCache stores the rendered homepage sections.
type HomepageCache interface {
	Get(ctx context.Context) (*HomepageListings, bool, error)
	Set(ctx context.Context, h *HomepageListings) error
	Invalidate(ctx context.Context) error
}

// ListingService defines use-case operations for listings.
type ListingService interface {
	Create(ctx context.Context, ownerID string, input CreateListingInput) (*domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	// AuthorizeUpdate fails with a not-found or forbidden error unless
	// callerID owns listing id.
	AuthorizeUpdate(ctx context.Context, callerID, id string) error
	Update(ctx context.Context, callerID, id string, input UpdateListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, callerID, id string) error
	Search(ctx context.Context, input ListListingsInput) (*ListingPage, error)
	Homepage(ctx context.Context) (*HomepageListings, error)
}
