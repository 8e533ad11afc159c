package broker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev domain.ListingEvent) error {
	p.log.Info().
		Str("event_id", ev.ID).
		Str("type", string(ev.Type)).
		Str("listing_id", ev.ListingID).
		Str("owner_id", ev.OwnerID).
		Time("occurred_at", ev.OccurredAt).
		Msg("listing event")
	return nil
}
