package service

import (
	"strconv"
	"strings"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 100

	// wildcard disables an enum filter.
	wildcard = "all"

	defaultSortField = "createdAt"
)

// sortableFields maps the public sort keys to themselves; anything else falls
// back to defaultSortField.
var sortableFields = map[string]struct{}{
	"createdAt":     {},
	"updatedAt":     {},
	"regularPrice":  {},
	"discountPrice": {},
	"bedrooms":      {},
	"bathrooms":     {},
	"title":         {},
}

// buildListingQuery turns raw query-string values into a normalised query.
// Nothing here fails: malformed values fall back to their defaults.
func buildListingQuery(in ports.ListListingsInput) ports.ListingQuery {
	q := ports.ListingQuery{
		SearchTerm:    strings.TrimSpace(in.SearchTerm),
		OfferOnly:     in.Offer == "true",
		FurnishedOnly: in.Furnished == "true",
		ParkingOnly:   in.Parking == "true",
		SortField:     defaultSortField,
		Ascending:     in.Order == "asc",
		StartIndex:    parseStartIndex(in.StartIndex),
		Limit:         parseLimit(in.Limit),
	}

	if pt := strings.TrimSpace(in.PropertyType); pt != "" && pt != wildcard {
		q.PropertyType = domain.PropertyType(pt)
	}
	if tt := strings.TrimSpace(in.TransactionType); tt != "" && tt != wildcard {
		q.TransactionType = domain.TransactionType(tt)
	}
	if _, ok := sortableFields[in.Sort]; ok {
		q.SortField = in.Sort
	}

	return q
}

// parseLimit: absent, non-numeric or zero → default; negative → 1.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil || n == 0:
		return DefaultPageSize
	case n < 1:
		return 1
	case n > MaxPageSize:
		return MaxPageSize
	}
	return n
}

func parseStartIndex(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// newListingPage derives the infinite-scroll counters for one window.
func newListingPage(items []*domain.Listing, total int64, q ports.ListingQuery) *ports.ListingPage {
	if items == nil {
		items = []*domain.Listing{}
	}
	remaining := total - int64(q.StartIndex+q.Limit)
	if remaining < 0 {
		remaining = 0
	}
	return &ports.ListingPage{
		Items:      items,
		Total:      total,
		Returned:   len(items),
		Remaining:  remaining,
		HasMore:    remaining > 0,
		StartIndex: q.StartIndex,
		Limit:      q.Limit,
	}
}
