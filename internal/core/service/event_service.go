package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abodeconnect/marketplace-api/internal/api/metrics"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

type listingEventService struct {
	publisher ports.ListingEventPublisher
	eventRepo ports.ListingEventRepository
	log       zerolog.Logger
}

// NewListingEventService returns the handler the dispatcher workers run for
// every listing event.
func NewListingEventService(
	publisher ports.ListingEventPublisher,
	eventRepo ports.ListingEventRepository,
	log zerolog.Logger,
) ports.ListingEventHandler {
	return &listingEventService{
		publisher: publisher,
		eventRepo: eventRepo,
		log:       log,
	}
}

// Handle publishes the event downstream and appends it to the audit trail.
// A publish failure is returned; an audit failure is only logged.
func (s *listingEventService) Handle(ctx context.Context, ev domain.ListingEvent) error {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		metrics.ListingEventsTotal.WithLabelValues(string(ev.Type), "publish_failed").Inc()
		return fmt.Errorf("handle listing event: publish: %w", err)
	}

	if err := s.eventRepo.InsertEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("listing_id", ev.ListingID).Msg("failed to insert audit event")
	}

	metrics.ListingEventsTotal.WithLabelValues(string(ev.Type), "published").Inc()
	s.log.Debug().
		Str("event_id", ev.ID).
		Str("type", string(ev.Type)).
		Str("listing_id", ev.ListingID).
		Msg("listing event processed")

	return nil
}
