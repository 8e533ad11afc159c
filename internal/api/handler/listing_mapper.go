package handler

import (
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

// --- Request → Service input ---

// toCreateListingInput expects a request that already passed validation, so
// every pointer is non-nil.
func toCreateListingInput(req createListingRequest) ports.CreateListingInput {
	return ports.CreateListingInput{
		Title:           *req.Title,
		Description:     *req.Description,
		Address:         *req.Address,
		RegularPrice:    *req.RegularPrice,
		DiscountPrice:   *req.DiscountPrice,
		Bathrooms:       *req.Bathrooms,
		Bedrooms:        *req.Bedrooms,
		Furnished:       *req.Furnished,
		Parking:         *req.Parking,
		PropertyType:    *req.PropertyType,
		TransactionType: *req.TransactionType,
		Offer:           *req.Offer,
		ImageURLs:       req.ImageURLs,
	}
}

func toUpdateListingInput(req updateListingRequest) ports.UpdateListingInput {
	return ports.UpdateListingInput{
		Title:           req.Title,
		Description:     req.Description,
		Address:         req.Address,
		RegularPrice:    req.RegularPrice,
		DiscountPrice:   req.DiscountPrice,
		Bathrooms:       req.Bathrooms,
		Bedrooms:        req.Bedrooms,
		Furnished:       req.Furnished,
		Parking:         req.Parking,
		PropertyType:    req.PropertyType,
		TransactionType: req.TransactionType,
		Offer:           req.Offer,
		ImageURLs:       req.ImageURLs,
	}
}

func toListListingsInput(p listingQueryParams) ports.ListListingsInput {
	return ports.ListListingsInput{
		SearchTerm:      p.SearchTerm,
		PropertyType:    p.PropertyType,
		TransactionType: p.TransactionType,
		Offer:           p.Offer,
		Furnished:       p.Furnished,
		Parking:         p.Parking,
		Sort:            p.Sort,
		Order:           p.Order,
		StartIndex:      p.StartIndex,
		Limit:           p.Limit,
	}
}

// --- Service result → HTTP response ---

func toListingCount(p *ports.ListingPage) listingCount {
	return listingCount{
		Total:     p.Total,
		Returned:  p.Returned,
		Remaining: p.Remaining,
		HasMore:   p.HasMore,
	}
}
