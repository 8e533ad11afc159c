package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/api/middleware"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

type stubAuthService struct {
	signupFn    func(ctx context.Context, username, email, password string) (*domain.User, error)
	signinFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	federatedFn func(ctx context.Context, email, name, photo string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.signupFn(ctx, username, email, password)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.signinFn(ctx, email, password)
}

func (s *stubAuthService) FederatedSignin(ctx context.Context, email, name, photo string) (string, *domain.User, error) {
	return s.federatedFn(ctx, email, name, photo)
}

func (s *stubAuthService) Verify(token string) (string, error) {
	return testTokens.Verify(token)
}

func newAuthEcho(stub *stubAuthService, secure bool) *echo.Echo {
	e := newTestEcho()
	h := NewAuthHandler(stub, SessionOptions{Secure: secure})
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/signin", h.Signin)
	e.POST("/auth/google-auth", h.GoogleAuth)
	e.GET("/auth/signout", h.Signout)
	return e
}

func sessionCookie(t *testing.T, cookies []*http.Cookie) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == middleware.TokenCookie {
			return c
		}
	}
	t.Fatalf("expected %s cookie", middleware.TokenCookie)
	return nil
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, username, email, password string) (*domain.User, error) {
			if username != "alice" || email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &domain.User{ID: "user-alice", Username: username, Email: email, PasswordHash: "hash"}, nil
		},
	}

	rec, env := call(t, newAuthEcho(stub, false), http.MethodPost, "/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"secret"}`, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if env["success"] != true || env["message"] != "User created successfully." {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	data := env["data"].(map[string]any)
	if data["id"] != "user-alice" || data["username"] != "alice" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.Conflict(domain.MsgUserExists)
		},
	}

	rec, env := call(t, newAuthEcho(stub, false), http.MethodPost, "/auth/signup", `{"username":"bob"}`, "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if env["message"] != domain.MsgUserExists || env["success"] != false {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	rec, _ := call(t, newAuthEcho(stub, false), http.MethodPost, "/auth/signup", "not-json", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signin_Success(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "user-alice", Username: "alice"}, nil
		},
	}

	rec, env := call(t, newAuthEcho(stub, false), http.MethodPost, "/auth/signin",
		`{"email":"alice@example.com","password":"secret"}`, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := env["data"].(map[string]any)
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
	user, ok := data["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["_id"] != "user-alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}

	cookie := sessionCookie(t, rec.Result().Cookies())
	if cookie.Value != "token123" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if cookie.Secure || cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("development cookie should be strict and not secure: %+v", cookie)
	}
	if cookie.MaxAge != 30*24*60*60 {
		t.Fatalf("expected 30 day cookie, got %d", cookie.MaxAge)
	}
}

func TestAuthHandler_Signin_ProductionCookie(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "token123", &domain.User{ID: "user-alice"}, nil
		},
	}

	rec, _ := call(t, newAuthEcho(stub, true), http.MethodPost, "/auth/signin", `{"email":"a@b.c","password":"p"}`, "")

	cookie := sessionCookie(t, rec.Result().Cookies())
	if !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("production cookie should be secure with SameSite=None: %+v", cookie)
	}
}

func TestAuthHandler_Signin_Errors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.Unauthorized(domain.MsgWrongCredentials), http.StatusUnauthorized},
		{domain.NotFound(domain.MsgUserNotFound), http.StatusNotFound},
		{domain.Validation(domain.MsgMissingAuthFields), http.StatusBadRequest},
	}

	for _, tc := range cases {
		stub := &stubAuthService{
			signinFn: func(context.Context, string, string) (string, *domain.User, error) {
				return "", nil, tc.err
			},
		}

		rec, env := call(t, newAuthEcho(stub, false), http.MethodPost, "/auth/signin", `{"email":"x@y.z","password":"bad"}`, "")

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if env["message"] != tc.err.Error() {
			t.Fatalf("expected message %q, got %v", tc.err.Error(), env["message"])
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatalf("no cookie expected on failure")
		}
	}
}

func TestAuthHandler_GoogleAuth(t *testing.T) {
	stub := &stubAuthService{
		federatedFn: func(_ context.Context, email, name, photo string) (string, *domain.User, error) {
			if email != "g@example.com" || name != "Gina G" || photo != "https://img.example.com/g.png" {
				t.Fatalf("unexpected args: %s %s %s", email, name, photo)
			}
			return "gtoken", &domain.User{ID: "user-g", Username: "ginag1a2b"}, nil
		},
	}

	rec, env := call(t, newAuthEcho(stub, false), http.MethodPost, "/auth/google-auth",
		`{"email":"g@example.com","name":"Gina G","photo":"https://img.example.com/g.png"}`, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env["data"].(map[string]any)["token"] != "gtoken" {
		t.Fatalf("unexpected data: %+v", env["data"])
	}
	cookie := sessionCookie(t, rec.Result().Cookies())
	if cookie.Value != "gtoken" {
		t.Fatalf("expected session cookie")
	}
	if cookie.MaxAge != 24*60*60 {
		t.Fatalf("expected cookie to expire with the one day token, got %d", cookie.MaxAge)
	}
}

func TestAuthHandler_CookieMaxAgeFollowsTokenTTL(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "token123", &domain.User{ID: "user-alice"}, nil
		},
		federatedFn: func(context.Context, string, string, string) (string, *domain.User, error) {
			return "gtoken", &domain.User{ID: "user-g"}, nil
		},
	}
	e := newTestEcho()
	h := NewAuthHandler(stub, SessionOptions{SigninMaxAge: 2 * time.Hour, FederatedMaxAge: 30 * time.Minute})
	e.POST("/auth/signin", h.Signin)
	e.POST("/auth/google-auth", h.GoogleAuth)

	rec, _ := call(t, e, http.MethodPost, "/auth/signin", `{"email":"a@b.c","password":"p"}`, "")
	if got := sessionCookie(t, rec.Result().Cookies()).MaxAge; got != 7200 {
		t.Fatalf("expected signin cookie max age 7200, got %d", got)
	}

	rec, _ = call(t, e, http.MethodPost, "/auth/google-auth", `{"email":"g@b.c","name":"G","photo":"https://x.io/a.png"}`, "")
	if got := sessionCookie(t, rec.Result().Cookies()).MaxAge; got != 1800 {
		t.Fatalf("expected federated cookie max age 1800, got %d", got)
	}
}

func TestAuthHandler_Signout(t *testing.T) {
	rec, env := call(t, newAuthEcho(&stubAuthService{}, false), http.MethodGet, "/auth/signout", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env["message"] != "User has been logged out successfully." {
		t.Fatalf("unexpected message: %v", env["message"])
	}
	cookie := sessionCookie(t, rec.Result().Cookies())
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cookie)
	}
}
