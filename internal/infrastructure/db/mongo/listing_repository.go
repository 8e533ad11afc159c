package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

const collectionListings = "listings"

// ListingRepository implements ports.ListingRepository on the listings collection.
type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

type listingDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Address         string             `bson:"address"`
	RegularPrice    float64            `bson:"regularPrice"`
	DiscountPrice   float64            `bson:"discountPrice"`
	Bathrooms       int                `bson:"bathrooms"`
	Bedrooms        int                `bson:"bedrooms"`
	Furnished       bool               `bson:"furnished"`
	Parking         bool               `bson:"parking"`
	PropertyType    string             `bson:"propertyType"`
	TransactionType string             `bson:"transactionType"`
	Offer           bool               `bson:"offer"`
	ImageURLs       []string           `bson:"imageUrls"`
	UserRef         string             `bson:"userRef"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func toListingDocument(l *domain.Listing) listingDocument {
	return listingDocument{
		Title:           l.Title,
		Description:     l.Description,
		Address:         l.Address,
		RegularPrice:    l.RegularPrice,
		DiscountPrice:   l.DiscountPrice,
		Bathrooms:       l.Bathrooms,
		Bedrooms:        l.Bedrooms,
		Furnished:       l.Furnished,
		Parking:         l.Parking,
		PropertyType:    string(l.PropertyType),
		TransactionType: string(l.TransactionType),
		Offer:           l.Offer,
		ImageURLs:       l.ImageURLs,
		UserRef:         l.UserRef,
		CreatedAt:       l.CreatedAt.UTC(),
		UpdatedAt:       l.UpdatedAt.UTC(),
	}
}

func (d *listingDocument) toDomain() *domain.Listing {
	images := d.ImageURLs
	if images == nil {
		images = []string{}
	}
	return &domain.Listing{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		Address:         d.Address,
		RegularPrice:    d.RegularPrice,
		DiscountPrice:   d.DiscountPrice,
		Bathrooms:       d.Bathrooms,
		Bedrooms:        d.Bedrooms,
		Furnished:       d.Furnished,
		Parking:         d.Parking,
		PropertyType:    domain.PropertyType(d.PropertyType),
		TransactionType: domain.TransactionType(d.TransactionType),
		Offer:           d.Offer,
		ImageURLs:       images,
		UserRef:         d.UserRef,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// listingID parses a listing id; malformed ids are a client error.
func listingID(id string) (primitive.ObjectID, error) {
	oid, ok := objectID(id)
	if !ok {
		return primitive.NilObjectID, domain.Validation(domain.MsgInvalidListingID)
	}
	return oid, nil
}

// Create inserts l and sets its ID.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toListingDocument(l)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	l.ID = doc.ID.Hex()
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := listingID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(domain.MsgListingNotFound)
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return doc.toDomain(), nil
}

// Update overwrites every mutable field of the stored listing. The owner and
// creation time are never touched.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	oid, err := listingID(l.ID)
	if err != nil {
		return err
	}

	doc := toListingDocument(l)
	set := bson.M{
		"title":           doc.Title,
		"description":     doc.Description,
		"address":         doc.Address,
		"regularPrice":    doc.RegularPrice,
		"discountPrice":   doc.DiscountPrice,
		"bathrooms":       doc.Bathrooms,
		"bedrooms":        doc.Bedrooms,
		"furnished":       doc.Furnished,
		"parking":         doc.Parking,
		"propertyType":    doc.PropertyType,
		"transactionType": doc.TransactionType,
		"offer":           doc.Offer,
		"imageUrls":       doc.ImageURLs,
		"updatedAt":       doc.UpdatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(domain.MsgListingNotFound)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := listingID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(domain.MsgListingNotFound)
	}
	return nil
}

// FindByOwner returns every listing created by ownerID, newest first.
func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userRef": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find listings by owner: %w", err)
	}
	return decodeListings(ctx, cur)
}

// Search returns one window of the listings matching q together with the
// total number of matches. Both queries run concurrently.
func (r *ListingRepository) Search(ctx context.Context, q ports.ListingQuery) ([]*domain.Listing, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listingFilter(q)

	var (
		items []*domain.Listing
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := r.col.Find(gctx, filter, listingFindOptions(q))
		if err != nil {
			return fmt.Errorf("search listings: %w", err)
		}
		items, err = decodeListings(gctx, cur)
		return err
	})
	g.Go(func() error {
		n, err := r.col.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func decodeListings(ctx context.Context, cur *mongo.Cursor) ([]*domain.Listing, error) {
	defer cur.Close(ctx)

	var docs []listingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	out := make([]*domain.Listing, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing owner lookups and the filtered
// newest-first queries.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, listingIndexes())
	return err
}

func listingIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "userRef", Value: 1}}},
		{Keys: bson.D{{Key: "address", Value: 1}, {Key: "propertyType", Value: 1}, {Key: "userRef", Value: 1}}},
		{Keys: bson.D{{Key: "transactionType", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "offer", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "furnished", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
}
