package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

const collectionListingEvents = "listing_events"

// ListingEventRepository appends listing lifecycle events to an audit collection.
type ListingEventRepository struct {
	col *mongo.Collection
}

func NewListingEventRepository(db *mongo.Database) *ListingEventRepository {
	return &ListingEventRepository{col: db.Collection(collectionListingEvents)}
}

// InsertEvent persists ev together with the time it was processed.
func (r *ListingEventRepository) InsertEvent(ctx context.Context, ev domain.ListingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"eventId":     ev.ID,
		"type":        string(ev.Type),
		"listingId":   ev.ListingID,
		"ownerId":     ev.OwnerID,
		"occurredAt":  ev.OccurredAt.UTC(),
		"processedAt": time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *ListingEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, listingEventIndexes())
	return err
}

// listingEventIndexes serve "history of one listing, newest first".
func listingEventIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "occurredAt", Value: -1}}},
	}
}
