package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/abodeconnect/marketplace-api/internal/api/metrics"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

// homepageSectionSize is the number of listings per homepage section.
const homepageSectionSize = 3

const (
	msgUpdateNotOwner = "You can only update your own listings!"
	msgDeleteNotOwner = "You can only delete your own listings!"
)

type ListingService struct {
	repo   ports.ListingRepository
	cache  ports.HomepageCache
	events ports.ListingEventSink
	logger zerolog.Logger
	now    func() time.Time

	// cacheMu orders homepage cache writes against invalidations. generation
	// counts invalidations; a rebuild only stores its result when no
	// invalidation happened while it was reading.
	cacheMu    sync.Mutex
	generation uint64
}

// NewListingService wires the listing use cases. cache and events may be nil,
// in which case homepage results are not cached and no events are emitted.
func NewListingService(repo ports.ListingRepository, cache ports.HomepageCache, events ports.ListingEventSink, logger zerolog.Logger) *ListingService {
	if cache == nil {
		cache = nopHomepageCache{}
	}
	if events == nil {
		events = nopEventSink{}
	}
	return &ListingService{repo: repo, cache: cache, events: events, logger: logger, now: time.Now}
}

// Create validates and stores a new listing owned by ownerID.
func (s *ListingService) Create(ctx context.Context, ownerID string, in ports.CreateListingInput) (*domain.Listing, error) {
	if ownerID == "" {
		return nil, domain.Unauthorized(domain.MsgNoToken)
	}

	now := s.now().UTC()
	listing := &domain.Listing{
		Title:           in.Title,
		Description:     in.Description,
		Address:         in.Address,
		RegularPrice:    in.RegularPrice,
		DiscountPrice:   in.DiscountPrice,
		Bathrooms:       in.Bathrooms,
		Bedrooms:        in.Bedrooms,
		Furnished:       in.Furnished,
		Parking:         in.Parking,
		PropertyType:    domain.PropertyType(in.PropertyType),
		TransactionType: domain.TransactionType(in.TransactionType),
		Offer:           in.Offer,
		ImageURLs:       in.ImageURLs,
		UserRef:         ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	listing.Normalize()
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		s.logger.Error().Err(err).Msg("failed to create listing")
		return nil, err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(listing.PropertyType), string(listing.TransactionType)).Inc()
	s.logger.Info().Str("listing_id", listing.ID).Str("owner_id", ownerID).Msg("listing created")
	s.afterMutation(ctx, domain.ListingCreated, listing)
	return listing, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// AuthorizeUpdate reports whether callerID may update listing id, before any
// payload is looked at.
func (s *ListingService) AuthorizeUpdate(ctx context.Context, callerID, id string) error {
	_, err := s.ownedListing(ctx, callerID, id, msgUpdateNotOwner)
	return err
}

// Update applies a partial update. Only the owner may update; the owner and ID
// cannot be changed through this path.
func (s *ListingService) Update(ctx context.Context, callerID, id string, in ports.UpdateListingInput) (*domain.Listing, error) {
	listing, err := s.ownedListing(ctx, callerID, id, msgUpdateNotOwner)
	if err != nil {
		return nil, err
	}

	applyListingPatch(listing, in)
	listing.Normalize()
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	listing.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info().Str("listing_id", listing.ID).Msg("listing updated")
	s.afterMutation(ctx, domain.ListingUpdated, listing)
	return listing, nil
}

// Delete removes a listing owned by callerID.
func (s *ListingService) Delete(ctx context.Context, callerID, id string) error {
	listing, err := s.ownedListing(ctx, callerID, id, msgDeleteNotOwner)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, listing.ID); err != nil {
		return err
	}

	metrics.ListingsDeletedTotal.Inc()
	s.logger.Info().Str("listing_id", listing.ID).Msg("listing deleted")
	s.afterMutation(ctx, domain.ListingDeleted, listing)
	return nil
}

// Search runs a filtered, sorted, paginated listing query.
func (s *ListingService) Search(ctx context.Context, in ports.ListListingsInput) (*ports.ListingPage, error) {
	q := buildListingQuery(in)

	start := time.Now()
	items, total, err := s.repo.Search(ctx, q)
	metrics.ListingSearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return newListingPage(items, total, q), nil
}

// Homepage returns the newest listings of each landing-page section, served
// from the cache when possible.
func (s *ListingService) Homepage(ctx context.Context) (*ports.HomepageListings, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("homepage cache read failed")
	} else if ok {
		metrics.HomepageCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.HomepageCacheTotal.WithLabelValues("miss").Inc()
	started := s.cacheGeneration()

	out := &ports.HomepageListings{}
	sections := []homepageSection{
		{dst: &out.Offer, q: newestQuery(func(q *ports.ListingQuery) { q.OfferOnly = true })},
		{dst: &out.Rent, q: newestOf(domain.TransactionRent)},
		{dst: &out.Sale, q: newestOf(domain.TransactionSale)},
		{dst: &out.Lease, q: newestOf(domain.TransactionLease)},
		{dst: &out.ShortTerm, q: newestOf(domain.TransactionShortTerm)},
		{dst: &out.LongTerm, q: newestOf(domain.TransactionLongTerm)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, sec := range sections {
		g.Go(func() error {
			items, _, err := s.repo.Search(gctx, sec.q)
			if err != nil {
				return err
			}
			if items == nil {
				items = []*domain.Listing{}
			}
			*sec.dst = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.storeHomepage(ctx, out, started)
	return out, nil
}

// afterMutation drops the cached homepage and emits a lifecycle event. Neither
// step can fail the request.
func (s *ListingService) afterMutation(ctx context.Context, typ domain.ListingEventType, l *domain.Listing) {
	s.cacheMu.Lock()
	s.generation++
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Str("listing_id", l.ID).Msg("homepage cache invalidation failed")
	}
	s.cacheMu.Unlock()

	s.events.Enqueue(domain.ListingEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		ListingID:  l.ID,
		OwnerID:    l.UserRef,
		OccurredAt: s.now().UTC(),
	})
}

func (s *ListingService) cacheGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// storeHomepage caches h unless a listing changed since generation started.
func (s *ListingService) storeHomepage(ctx context.Context, h *ports.HomepageListings, started uint64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.generation != started {
		s.logger.Debug().Msg("homepage changed during rebuild, not cached")
		return
	}
	if err := s.cache.Set(ctx, h); err != nil {
		s.logger.Warn().Err(err).Msg("homepage cache write failed")
	}
}

func (s *ListingService) ownedListing(ctx context.Context, callerID, id, denied string) (*domain.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(callerID) {
		return nil, domain.Forbidden(denied)
	}
	return listing, nil
}

type homepageSection struct {
	dst *[]*domain.Listing
	q   ports.ListingQuery
}

func newestQuery(opt func(*ports.ListingQuery)) ports.ListingQuery {
	q := ports.ListingQuery{SortField: defaultSortField, Limit: homepageSectionSize}
	opt(&q)
	return q
}

func newestOf(tt domain.TransactionType) ports.ListingQuery {
	return newestQuery(func(q *ports.ListingQuery) { q.TransactionType = tt })
}

func applyListingPatch(l *domain.Listing, in ports.UpdateListingInput) {
	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.RegularPrice != nil {
		l.RegularPrice = *in.RegularPrice
	}
	if in.DiscountPrice != nil {
		l.DiscountPrice = *in.DiscountPrice
	}
	if in.Bathrooms != nil {
		l.Bathrooms = *in.Bathrooms
	}
	if in.Bedrooms != nil {
		l.Bedrooms = *in.Bedrooms
	}
	if in.Furnished != nil {
		l.Furnished = *in.Furnished
	}
	if in.Parking != nil {
		l.Parking = *in.Parking
	}
	if in.PropertyType != nil {
		l.PropertyType = domain.PropertyType(*in.PropertyType)
	}
	if in.TransactionType != nil {
		l.TransactionType = domain.TransactionType(*in.TransactionType)
	}
	if in.Offer != nil {
		l.Offer = *in.Offer
	}
	if in.ImageURLs != nil {
		l.ImageURLs = in.ImageURLs
	}
}

type nopHomepageCache struct{}

func (nopHomepageCache) Get(context.Context) (*ports.HomepageListings, bool, error) {
	return nil, false, nil
}
func (nopHomepageCache) Set(context.Context, *ports.HomepageListings) error { return nil }
func (nopHomepageCache) Invalidate(context.Context) error                   { return nil }

type nopEventSink struct{}

func (nopEventSink) Enqueue(domain.ListingEvent) {}
