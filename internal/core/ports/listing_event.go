package ports

import (
	"context"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// ListingEventSink accepts events for asynchronous processing. Enqueue must
// not block the request path.
type ListingEventSink interface {
	Enqueue(event domain.ListingEvent)
}

// ListingEventHandler processes one dequeued event.
type ListingEventHandler interface {
	Handle(ctx context.Context, event domain.ListingEvent) error
}

// ListingEventPublisher forwards events to downstream consumers.
type ListingEventPublisher interface {
	Publish(ctx context.Context, event domain.ListingEvent) error
}

// ListingEventRepository keeps the audit trail of listing events.
type ListingEventRepository interface {
	InsertEvent(ctx context.Context, event domain.ListingEvent) error
}
