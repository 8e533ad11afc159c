package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

type stubListingService struct {
	createFn    func(ctx context.Context, ownerID string, in ports.CreateListingInput) (*domain.Listing, error)
	getFn       func(ctx context.Context, id string) (*domain.Listing, error)
	authorizeFn func(ctx context.Context, callerID, id string) error
	updateFn    func(ctx context.Context, callerID, id string, in ports.UpdateListingInput) (*domain.Listing, error)
	deleteFn    func(ctx context.Context, callerID, id string) error
	searchFn    func(ctx context.Context, in ports.ListListingsInput) (*ports.ListingPage, error)
	homepageFn  func(ctx context.Context) (*ports.HomepageListings, error)
}

func (s *stubListingService) Create(ctx context.Context, ownerID string, in ports.CreateListingInput) (*domain.Listing, error) {
	return s.createFn(ctx, ownerID, in)
}

func (s *stubListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.getFn(ctx, id)
}

func (s *stubListingService) AuthorizeUpdate(ctx context.Context, callerID, id string) error {
	if s.authorizeFn == nil {
		return nil
	}
	return s.authorizeFn(ctx, callerID, id)
}

func (s *stubListingService) Update(ctx context.Context, callerID, id string, in ports.UpdateListingInput) (*domain.Listing, error) {
	return s.updateFn(ctx, callerID, id, in)
}

func (s *stubListingService) Delete(ctx context.Context, callerID, id string) error {
	return s.deleteFn(ctx, callerID, id)
}

func (s *stubListingService) Search(ctx context.Context, in ports.ListListingsInput) (*ports.ListingPage, error) {
	return s.searchFn(ctx, in)
}

func (s *stubListingService) Homepage(ctx context.Context) (*ports.HomepageListings, error) {
	return s.homepageFn(ctx)
}

func newListingEcho(stub *stubListingService) *echo.Echo {
	e := newTestEcho()
	h := NewListingHandler(stub)
	e.GET("/listings", h.Search)
	e.GET("/listings/all", h.All)
	e.GET("/listings/sale", h.Sale)
	e.GET("/listings/homepage", h.Homepage)
	e.GET("/listings/:id", h.Get)
	e.POST("/listings", h.Create, requireAuth())
	e.PUT("/listings/:id", h.Update, requireAuth())
	e.DELETE("/listings/:id", h.Delete, requireAuth())
	return e
}

const validListingBody = `{
	"title": "Sunny loft",
	"description": "Top floor, lots of light",
	"address": "12 Harbour Road",
	"regularPrice": 1200,
	"discountPrice": 1000,
	"bathrooms": 1,
	"bedrooms": 2,
	"furnished": false,
	"parking": true,
	"propertyType": "apartment",
	"transactionType": "rent",
	"offer": true,
	"imageUrls": ["https://img.example.com/loft.jpg"]
}`

func TestListingHandler_Create_Success(t *testing.T) {
	stub := &stubListingService{
		createFn: func(_ context.Context, ownerID string, in ports.CreateListingInput) (*domain.Listing, error) {
			if ownerID != "user-alice" {
				t.Fatalf("expected owner from token, got %q", ownerID)
			}
			if in.RegularPrice != 1200 || in.DiscountPrice != 1000 || in.Furnished || !in.Parking {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Listing{ID: "listing-1", Title: in.Title, UserRef: ownerID}, nil
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodPost, "/listings", validListingBody, "alice-token")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if env["message"] != "Listing created successfully!" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
	data := env["data"].(map[string]any)
	if data["_id"] != "listing-1" || data["userRef"] != "user-alice" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestListingHandler_Create_MissingField(t *testing.T) {
	stub := &stubListingService{
		createFn: func(context.Context, string, ports.CreateListingInput) (*domain.Listing, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	body := strings.Replace(validListingBody, `"title": "Sunny loft",`, "", 1)

	rec, env := call(t, newListingEcho(stub), http.MethodPost, "/listings", body, "alice-token")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env["message"] != "title is required" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_Create_FalseBooleansArePresent(t *testing.T) {
	called := false
	stub := &stubListingService{
		createFn: func(_ context.Context, _ string, in ports.CreateListingInput) (*domain.Listing, error) {
			called = true
			return &domain.Listing{ID: "listing-1"}, nil
		},
	}
	body := strings.Replace(validListingBody, `"offer": true`, `"offer": false`, 1)

	rec, _ := call(t, newListingEcho(stub), http.MethodPost, "/listings", body, "alice-token")

	if rec.Code != http.StatusCreated || !called {
		t.Fatalf("expected false to count as provided, got %d", rec.Code)
	}
}

func TestListingHandler_Create_InvalidImageURL(t *testing.T) {
	stub := &stubListingService{}
	body := strings.Replace(validListingBody, "https://img.example.com/loft.jpg", "not-a-url", 1)

	rec, env := call(t, newListingEcho(stub), http.MethodPost, "/listings", body, "alice-token")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(env["message"].(string), "imageUrls") {
		t.Fatalf("expected imageUrls in message, got %v", env["message"])
	}
}

func TestListingHandler_Create_DiscountRejected(t *testing.T) {
	stub := &stubListingService{
		createFn: func(context.Context, string, ports.CreateListingInput) (*domain.Listing, error) {
			return nil, domain.Validation(domain.MsgDiscountTooHigh)
		},
	}
	body := strings.Replace(validListingBody, `"discountPrice": 1000`, `"discountPrice": 1200`, 1)

	rec, env := call(t, newListingEcho(stub), http.MethodPost, "/listings", body, "alice-token")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env["message"] != domain.MsgDiscountTooHigh || env["success"] != false {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestListingHandler_Create_RequiresToken(t *testing.T) {
	rec, env := call(t, newListingEcho(&stubListingService{}), http.MethodPost, "/listings", validListingBody, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env["message"] != domain.MsgNoToken {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_Create_TokenFromCookie(t *testing.T) {
	stub := &stubListingService{
		createFn: func(_ context.Context, ownerID string, _ ports.CreateListingInput) (*domain.Listing, error) {
			return &domain.Listing{ID: "listing-1", UserRef: ownerID}, nil
		},
	}
	e := newListingEcho(stub)

	req := newJSONRequest(http.MethodPost, "/listings", validListingBody)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "bob-token"})
	rec := serve(e, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"userRef":"user-bob"`) {
		t.Fatalf("expected owner from cookie, got %s", rec.Body.String())
	}
}

func TestListingHandler_Update_NotOwner(t *testing.T) {
	stub := &stubListingService{
		updateFn: func(_ context.Context, callerID, id string, _ ports.UpdateListingInput) (*domain.Listing, error) {
			if callerID != "user-bob" || id != "listing-1" {
				t.Fatalf("unexpected args: %s %s", callerID, id)
			}
			return nil, domain.Forbidden("You can only update your own listings!")
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodPut, "/listings/listing-1", `{"title":"Mine now"}`, "bob-token")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if env["message"] != "You can only update your own listings!" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_Update_NotOwnerWithInvalidBody(t *testing.T) {
	stub := &stubListingService{
		authorizeFn: func(_ context.Context, callerID, id string) error {
			if callerID == "user-alice" && id == "listing-1" {
				return nil
			}
			return domain.Forbidden("You can only update your own listings!")
		},
		updateFn: func(context.Context, string, string, ports.UpdateListingInput) (*domain.Listing, error) {
			t.Fatalf("update must not run for a non-owner")
			return nil, nil
		},
	}
	e := newListingEcho(stub)

	bodies := []string{
		`{"regularPrice":-5}`,
		`{"imageUrls":["nope"]}`,
		`{not json`,
	}
	for _, body := range bodies {
		rec, env := call(t, e, http.MethodPut, "/listings/listing-1", body, "bob-token")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("body %s: expected 403, got %d", body, rec.Code)
		}
		if env["message"] != "You can only update your own listings!" {
			t.Fatalf("body %s: unexpected message: %v", body, env["message"])
		}
	}
}

func TestListingHandler_Update_OwnerWithInvalidBody(t *testing.T) {
	rec, env := call(t, newListingEcho(&stubListingService{}), http.MethodPut, "/listings/listing-1",
		`{"regularPrice":-5}`, "alice-token")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env["message"] != "regularPrice must be at least 0" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_Update_PassesOnlyProvidedFields(t *testing.T) {
	stub := &stubListingService{
		updateFn: func(_ context.Context, _, _ string, in ports.UpdateListingInput) (*domain.Listing, error) {
			if in.Title == nil || *in.Title != "New title" {
				t.Fatalf("expected title patch, got %+v", in.Title)
			}
			if in.RegularPrice != nil || in.Offer != nil || in.ImageURLs != nil {
				t.Fatalf("unexpected fields in patch: %+v", in)
			}
			return &domain.Listing{ID: "listing-1", Title: *in.Title}, nil
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodPut, "/listings/listing-1", `{"title":"New title"}`, "alice-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env["message"] != "Listing updated successfully!" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_Delete(t *testing.T) {
	stub := &stubListingService{
		deleteFn: func(_ context.Context, callerID, id string) error {
			if callerID != "user-alice" || id != "listing-1" {
				t.Fatalf("unexpected args: %s %s", callerID, id)
			}
			return nil
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodDelete, "/listings/listing-1", "", "alice-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env["message"] != "Listing has been deleted successfully!" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_Get_NotFound(t *testing.T) {
	stub := &stubListingService{
		getFn: func(context.Context, string) (*domain.Listing, error) {
			return nil, domain.NotFound(domain.MsgListingNotFound)
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodGet, "/listings/missing", "", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env["message"] != domain.MsgListingNotFound {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_Search_CountObject(t *testing.T) {
	stub := &stubListingService{
		searchFn: func(_ context.Context, in ports.ListListingsInput) (*ports.ListingPage, error) {
			if in.TransactionType != "rent" || in.Limit != "3" || in.Offer != "true" || in.SearchTerm != "loft" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListingPage{
				Items:     []*domain.Listing{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Total:     10,
				Returned:  3,
				Remaining: 7,
				HasMore:   true,
			}, nil
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodGet,
		"/listings?searchTerm=loft&transactionType=rent&offer=true&limit=3", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	count := env["count"].(map[string]any)
	if count["total"] != float64(10) || count["returned"] != float64(3) ||
		count["remaining"] != float64(7) || count["hasMore"] != true {
		t.Fatalf("unexpected count: %+v", count)
	}
	if len(env["data"].([]any)) != 3 {
		t.Fatalf("expected 3 items, got %v", env["data"])
	}
}

func TestListingHandler_Sale_PresetsTransactionType(t *testing.T) {
	stub := &stubListingService{
		searchFn: func(_ context.Context, in ports.ListListingsInput) (*ports.ListingPage, error) {
			if in.TransactionType != "sale" {
				t.Fatalf("expected sale preset, got %q", in.TransactionType)
			}
			if in.SearchTerm != "" || in.Offer != "" {
				t.Fatalf("sale endpoint should ignore filters: %+v", in)
			}
			if in.Sort != "regularPrice" || in.Order != "asc" {
				t.Fatalf("expected sort params, got %+v", in)
			}
			return &ports.ListingPage{Items: []*domain.Listing{}}, nil
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodGet,
		"/listings/sale?searchTerm=ignored&offer=true&sort=regularPrice&order=asc", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env["message"] != "Sale listings retrieved successfully!" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}

func TestListingHandler_All_IgnoresFilters(t *testing.T) {
	stub := &stubListingService{
		searchFn: func(_ context.Context, in ports.ListListingsInput) (*ports.ListingPage, error) {
			if in.TransactionType != "" || in.PropertyType != "" {
				t.Fatalf("all endpoint should ignore filters: %+v", in)
			}
			return &ports.ListingPage{Items: []*domain.Listing{}}, nil
		},
	}

	rec, _ := call(t, newListingEcho(stub), http.MethodGet, "/listings/all?transactionType=rent&propertyType=villa", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListingHandler_Homepage_SetsCacheControl(t *testing.T) {
	stub := &stubListingService{
		homepageFn: func(context.Context) (*ports.HomepageListings, error) {
			return &ports.HomepageListings{Rent: []*domain.Listing{{ID: "r1"}}}, nil
		},
	}

	rec, env := call(t, newListingEcho(stub), http.MethodGet, "/listings/homepage", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Fatalf("unexpected Cache-Control: %q", got)
	}
	data := env["data"].(map[string]any)
	if len(data["rent"].([]any)) != 1 {
		t.Fatalf("unexpected rent section: %v", data["rent"])
	}
}
