package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

// searchFields are matched case-insensitively against the search term.
var searchFields = []string{"title", "description", "address"}

// listingFilter translates q into a MongoDB filter document. Conditions are
// combined with AND; the search term matches any of searchFields.
func listingFilter(q ports.ListingQuery) bson.M {
	filter := bson.M{}

	if q.SearchTerm != "" {
		pattern := containsIgnoreCase(q.SearchTerm)
		or := make(bson.A, 0, len(searchFields))
		for _, f := range searchFields {
			or = append(or, bson.M{f: pattern})
		}
		filter["$or"] = or
	}
	if q.PropertyType != "" {
		filter["propertyType"] = string(q.PropertyType)
	}
	if q.TransactionType != "" {
		filter["transactionType"] = string(q.TransactionType)
	}
	if q.OfferOnly {
		filter["offer"] = true
	}
	if q.FurnishedOnly {
		filter["furnished"] = true
	}
	if q.ParkingOnly {
		filter["parking"] = true
	}

	return filter
}

// listingFindOptions applies sort and pagination. _id breaks ties so that
// windows over equal sort keys never overlap.
func listingFindOptions(q ports.ListingQuery) *options.FindOptions {
	dir := -1
	if q.Ascending {
		dir = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(q.StartIndex)).
		SetLimit(int64(q.Limit))
}

func containsIgnoreCase(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}
