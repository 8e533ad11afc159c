package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/api/response"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

// homepageCacheControl lets browsers and CDNs keep the homepage for the same
// time the server-side cache does.
const homepageCacheControl = "public, max-age=300"

// ListingHandler handles HTTP requests for listing operations.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// Create handles POST /listings.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing"
// @Success      201   {object}  listingResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.service.Create(c.Request().Context(), owner, toCreateListingInput(req))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Listing created successfully!", listing)
}

// Get handles GET /listings/:id.
//
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  listingResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Listing retrieved successfully!", listing)
}

// Update handles PUT /listings/:id.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Listing ID"
// @Param        body  body      updateListingRequest  true  "Fields to change"
// @Success      200   {object}  listingResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	// Ownership is decided before the body is read, so a non-owner always
	// gets 403 whatever they send.
	if err := h.service.AuthorizeUpdate(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	var req updateListingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), toUpdateListingInput(req))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Listing updated successfully!", listing)
}

// Delete handles DELETE /listings/:id.
//
// @Summary      Delete a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Listing has been deleted successfully!", nil)
}

// Search handles GET /listings.
//
// @Summary      Search listings
// @Tags         listings
// @Produce      json
// @Param        searchTerm       query     string  false  "Matches title, description or address"
// @Param        propertyType     query     string  false  "Property type or 'all'"
// @Param        transactionType  query     string  false  "Transaction type or 'all'"
// @Param        offer            query     bool    false  "Only listings with an offer"
// @Param        furnished        query     bool    false  "Only furnished listings"
// @Param        parking          query     bool    false  "Only listings with parking"
// @Param        sort             query     string  false  "Sort field (default createdAt)"
// @Param        order            query     string  false  "asc or desc (default desc)"
// @Param        startIndex       query     int     false  "Offset (default 0)"
// @Param        limit            query     int     false  "Page size (default 9)"
// @Success      200              {object}  listingListResponse
// @Router       /listings [get]
func (h *ListingHandler) Search(c echo.Context) error {
	var params listingQueryParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &params); err != nil {
		return domain.Validation("Invalid query parameters.")
	}
	return h.search(c, toListListingsInput(params), "Listings retrieved successfully!")
}

// All handles GET /listings/all: every listing, sorted and paginated only.
//
// @Summary      List all listings
// @Tags         listings
// @Produce      json
// @Param        sort        query     string  false  "Sort field (default createdAt)"
// @Param        order       query     string  false  "asc or desc (default desc)"
// @Param        startIndex  query     int     false  "Offset (default 0)"
// @Param        limit       query     int     false  "Page size (default 9)"
// @Success      200         {object}  listingListResponse
// @Router       /listings/all [get]
func (h *ListingHandler) All(c echo.Context) error {
	return h.search(c, pageOnly(c), "All listings retrieved successfully!")
}

// Sale handles GET /listings/sale.
//
// @Summary      List listings for sale
// @Tags         listings
// @Produce      json
// @Param        sort        query     string  false  "Sort field (default createdAt)"
// @Param        order       query     string  false  "asc or desc (default desc)"
// @Param        startIndex  query     int     false  "Offset (default 0)"
// @Param        limit       query     int     false  "Page size (default 9)"
// @Success      200         {object}  listingListResponse
// @Router       /listings/sale [get]
func (h *ListingHandler) Sale(c echo.Context) error {
	in := pageOnly(c)
	in.TransactionType = string(domain.TransactionSale)
	return h.search(c, in, "Sale listings retrieved successfully!")
}

// Homepage handles GET /listings/homepage.
//
// @Summary      Landing page sections
// @Tags         listings
// @Produce      json
// @Success      200  {object}  ports.HomepageListings
// @Router       /listings/homepage [get]
func (h *ListingHandler) Homepage(c echo.Context) error {
	sections, err := h.service.Homepage(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", homepageCacheControl)
	return response.OK(c, http.StatusOK, "Homepage listings retrieved successfully!", sections)
}

func (h *ListingHandler) search(c echo.Context, in ports.ListListingsInput, message string) error {
	page, err := h.service.Search(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return response.List(c, message, toListingCount(page), page.Items)
}

func pageOnly(c echo.Context) ports.ListListingsInput {
	return ports.ListListingsInput{
		Sort:       c.QueryParam("sort"),
		Order:      c.QueryParam("order"),
		StartIndex: c.QueryParam("startIndex"),
		Limit:      c.QueryParam("limit"),
	}
}
