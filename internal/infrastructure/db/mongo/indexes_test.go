package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexKeys(models []mongo.IndexModel) []bson.D {
	out := make([]bson.D, 0, len(models))
	for _, m := range models {
		out = append(out, m.Keys.(bson.D))
	}
	return out
}

func TestListingIndexes(t *testing.T) {
	keys := indexKeys(listingIndexes())

	assert.Contains(t, keys, bson.D{{Key: "address", Value: 1}, {Key: "propertyType", Value: 1}, {Key: "userRef", Value: 1}})
	assert.Contains(t, keys, bson.D{{Key: "userRef", Value: 1}})
	for _, flag := range []string{"transactionType", "offer", "furnished"} {
		assert.Contains(t, keys, bson.D{{Key: flag, Value: 1}, {Key: "createdAt", Value: -1}}, flag)
	}
}

func TestListingEventIndexes_NewestFirstPerListing(t *testing.T) {
	assert.Equal(t,
		[]bson.D{{{Key: "listingId", Value: 1}, {Key: "occurredAt", Value: -1}}},
		indexKeys(listingEventIndexes()))
}
