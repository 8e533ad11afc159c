package domain

import (
	"regexp"
	"strings"
	"time"
)

// PropertyType is the kind of building a listing advertises.
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyStudio    PropertyType = "studio"
	PropertyCondo     PropertyType = "condo"
	PropertyVilla     PropertyType = "villa"
	PropertyDuplex    PropertyType = "duplex"
	PropertyTownhouse PropertyType = "townhouse"
)

// PropertyTypes lists every accepted PropertyType.
var PropertyTypes = []PropertyType{
	PropertyApartment, PropertyHouse, PropertyStudio, PropertyCondo,
	PropertyVilla, PropertyDuplex, PropertyTownhouse,
}

// TransactionType is the deal offered on a listing.
type TransactionType string

const (
	TransactionSale      TransactionType = "sale"
	TransactionRent      TransactionType = "rent"
	TransactionLease     TransactionType = "lease"
	TransactionShortTerm TransactionType = "short-term"
	TransactionLongTerm  TransactionType = "long-term"
)

// TransactionTypes lists every accepted TransactionType.
var TransactionTypes = []TransactionType{
	TransactionSale, TransactionRent, TransactionLease,
	TransactionShortTerm, TransactionLongTerm,
}

// IsValid reports whether p is one of PropertyTypes.
func (p PropertyType) IsValid() bool {
	for _, allowed := range PropertyTypes {
		if allowed == p {
			return true
		}
	}
	return false
}

// IsValid reports whether t is one of TransactionTypes.
func (t TransactionType) IsValid() bool {
	for _, allowed := range TransactionTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

var imageURLPattern = regexp.MustCompile(`^https?://.+\..+`)

// IsImageURL reports whether s looks like an http(s) URL with a dotted host.
func IsImageURL(s string) bool {
	return imageURLPattern.MatchString(s)
}

// Listing is a property offered for sale, rent or lease.
type Listing struct {
	ID              string          `json:"_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Address         string          `json:"address"`
	RegularPrice    float64         `json:"regularPrice"`
	DiscountPrice   float64         `json:"discountPrice"`
	Bathrooms       int             `json:"bathrooms"`
	Bedrooms        int             `json:"bedrooms"`
	Furnished       bool            `json:"furnished"`
	Parking         bool            `json:"parking"`
	PropertyType    PropertyType    `json:"propertyType"`
	TransactionType TransactionType `json:"transactionType"`
	Offer           bool            `json:"offer"`
	ImageURLs       []string        `json:"imageUrls"`
	UserRef         string          `json:"userRef"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// IsOwnedBy reports whether callerID created this listing.
func (l *Listing) IsOwnedBy(callerID string) bool {
	return callerID != "" && l.UserRef == callerID
}

// Normalize trims the free-text fields in place.
func (l *Listing) Normalize() {
	l.Title = strings.TrimSpace(l.Title)
	l.Description = strings.TrimSpace(l.Description)
	l.Address = strings.TrimSpace(l.Address)
}

// Validate checks the stored-document constraints. It runs on create and
// again on the merged document after every update.
func (l *Listing) Validate() error {
	switch {
	case l.Title == "":
		return Validation("Listing title is required.")
	case l.Description == "":
		return Validation("Description is required.")
	case l.Address == "":
		return Validation("Address is required.")
	case l.RegularPrice < 0:
		return Validation("Regular price must be a positive number.")
	case l.DiscountPrice < 0:
		return Validation("Discount price must be a positive number.")
	case l.DiscountPrice >= l.RegularPrice:
		return Validation(MsgDiscountTooHigh)
	case l.Bathrooms < 0:
		return Validation("Bathrooms must be a positive number.")
	case l.Bedrooms < 0:
		return Validation("Bedrooms must be a positive number.")
	case !l.PropertyType.IsValid():
		return Validation("Invalid property type.")
	case !l.TransactionType.IsValid():
		return Validation("Invalid transaction type.")
	case len(l.ImageURLs) == 0:
		return Validation("At least one image URL is required.")
	}
	for _, u := range l.ImageURLs {
		if !IsImageURL(u) {
			return Validation("All image URLs must be valid URLs.")
		}
	}
	return nil
}

// ListingEventType names a listing lifecycle change.
type ListingEventType string

const (
	ListingCreated ListingEventType = "listing.created"
	ListingUpdated ListingEventType = "listing.updated"
	ListingDeleted ListingEventType = "listing.deleted"
)

// ListingEvent records a mutation after it has been persisted.
type ListingEvent struct {
	ID         string           `json:"id"`
	Type       ListingEventType `json:"type"`
	ListingID  string           `json:"listingId"`
	OwnerID    string           `json:"ownerId"`
	OccurredAt time.Time        `json:"occurredAt"`
}
