package handler

import "github.com/abodeconnect/marketplace-api/internal/core/domain"

// --- Request / Response types ---

// createListingRequest uses pointers so that a missing field can be told
// apart from a zero value.
type createListingRequest struct {
	Title           *string  `json:"title"           validate:"required"`
	Description     *string  `json:"description"     validate:"required"`
	Address         *string  `json:"address"         validate:"required"`
	RegularPrice    *float64 `json:"regularPrice"    validate:"required,gte=0"`
	DiscountPrice   *float64 `json:"discountPrice"   validate:"required,gte=0"`
	Bathrooms       *int     `json:"bathrooms"       validate:"required,gte=0"`
	Bedrooms        *int     `json:"bedrooms"        validate:"required,gte=0"`
	Furnished       *bool    `json:"furnished"       validate:"required"`
	Parking         *bool    `json:"parking"         validate:"required"`
	PropertyType    *string  `json:"propertyType"    validate:"required"`
	TransactionType *string  `json:"transactionType" validate:"required"`
	Offer           *bool    `json:"offer"           validate:"required"`
	ImageURLs       []string `json:"imageUrls"       validate:"required,min=1,dive,imageurl"`
}

// updateListingRequest is a partial update. _id and userRef are not accepted.
type updateListingRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Address         *string  `json:"address"`
	RegularPrice    *float64 `json:"regularPrice"    validate:"omitempty,gte=0"`
	DiscountPrice   *float64 `json:"discountPrice"   validate:"omitempty,gte=0"`
	Bathrooms       *int     `json:"bathrooms"       validate:"omitempty,gte=0"`
	Bedrooms        *int     `json:"bedrooms"        validate:"omitempty,gte=0"`
	Furnished       *bool    `json:"furnished"`
	Parking         *bool    `json:"parking"`
	PropertyType    *string  `json:"propertyType"`
	TransactionType *string  `json:"transactionType"`
	Offer           *bool    `json:"offer"`
	ImageURLs       []string `json:"imageUrls"       validate:"omitempty,min=1,dive,imageurl"`
}

// listingQueryParams mirrors the search query string. Values stay raw so the
// service can fall back to defaults on malformed numbers.
type listingQueryParams struct {
	SearchTerm      string `query:"searchTerm"`
	PropertyType    string `query:"propertyType"`
	TransactionType string `query:"transactionType"`
	Offer           string `query:"offer"`
	Furnished       string `query:"furnished"`
	Parking         string `query:"parking"`
	Sort            string `query:"sort"`
	Order           string `query:"order"`
	StartIndex      string `query:"startIndex"`
	Limit           string `query:"limit"`
}

// listingCount is the count block of list responses.
type listingCount struct {
	Total     int64 `json:"total"`
	Returned  int   `json:"returned"`
	Remaining int64 `json:"remaining"`
	HasMore   bool  `json:"hasMore"`
}

// listingListResponse documents the list envelope for swagger.
type listingListResponse struct {
	StatusCode int               `json:"statusCode"`
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Count      listingCount      `json:"count"`
	Data       []*domain.Listing `json:"data"`
}

// listingResponse documents the single-listing envelope for swagger.
type listingResponse struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Count      int             `json:"count"`
	Data       *domain.Listing `json:"data"`
}

// errorResponse documents the error envelope for swagger.
type errorResponse struct {
	StatusCode int      `json:"statusCode"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Count      int      `json:"count"`
	Data       struct{} `json:"data"`
}
