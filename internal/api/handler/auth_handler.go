package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/api/middleware"
	"github.com/abodeconnect/marketplace-api/internal/api/response"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

const (
	defaultSigninMaxAge    = 30 * 24 * time.Hour
	defaultFederatedMaxAge = 24 * time.Hour
)

// SessionOptions configures the access_token cookie. The max ages should
// match the lifetime of the tokens the auth service issues.
type SessionOptions struct {
	// Secure marks the cookie Secure with SameSite=None, for cross-site
	// production frontends.
	Secure          bool
	SigninMaxAge    time.Duration
	FederatedMaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	session     SessionOptions
}

// NewAuthHandler creates an AuthHandler. Zero max ages fall back to 30 days
// for signin and one day for federated signin.
func NewAuthHandler(authService ports.AuthService, session SessionOptions) *AuthHandler {
	if session.SigninMaxAge <= 0 {
		session.SigninMaxAge = defaultSigninMaxAge
	}
	if session.FederatedMaxAge <= 0 {
		session.FederatedMaxAge = defaultFederatedMaxAge
	}
	return &AuthHandler{authService: authService, session: session}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type federatedRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type signupData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type sessionData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  response.Envelope{data=signupData}
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusCreated, "User created successfully.", signupData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Signin authenticates a user, sets the session cookie and returns the token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  response.Envelope{data=sessionData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, h.session.SigninMaxAge)
	return response.OK(c, http.StatusOK, "Login successful!", sessionData{User: user, Token: token})
}

// GoogleAuth signs in with an identity verified by Google on the client,
// creating the account on first use.
//
// @Summary      Sign in with Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      federatedRequest  true  "Google profile"
// @Success      200   {object}  response.Envelope{data=sessionData}
// @Failure      400   {object}  errorResponse
// @Router       /auth/google-auth [post]
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req federatedRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.FederatedSignin(c.Request().Context(), req.Email, req.Name, req.Photo)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, h.session.FederatedMaxAge)
	return response.OK(c, http.StatusOK, "User authenticated successfully", sessionData{User: user, Token: token})
}

// Signout clears the session cookie. Tokens are not revoked server-side.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  errorResponse
// @Router       /auth/signout [get]
func (h *AuthHandler) Signout(c echo.Context) error {
	h.clearSessionCookie(c)
	return response.OK(c, http.StatusOK, "User has been logged out successfully.", nil)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge time.Duration) {
	c.SetCookie(h.cookie(token, int(maxAge.Seconds())))
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(h.cookie("", -1))
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	ck := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if h.session.Secure {
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}
