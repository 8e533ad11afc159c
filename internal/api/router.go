package api

import (
	"net/http"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/abodeconnect/marketplace-api/docs"
	"github.com/abodeconnect/marketplace-api/internal/api/handler"
	"github.com/abodeconnect/marketplace-api/internal/api/middleware"
	"github.com/abodeconnect/marketplace-api/internal/api/response"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

const (
	basePath       = "/api/v1"
	welcomeMessage = "Welcome to the Real Estate Marketplace AbodeConnect API"
)

// Deps is everything the HTTP layer needs. Services are built by the caller.
type Deps struct {
	AuthService    ports.AuthService
	ListingService ports.ListingService
	UserService    ports.UserService

	// HealthChecks are run by the readiness probe, keyed by dependency name.
	HealthChecks map[string]handler.Check

	Logger       zerolog.Logger
	AllowOrigins []string
	// Session configures the session cookie.
	Session handler.SessionOptions
	// AuthRateLimit and AuthRateBurst throttle /auth per client IP. A zero
	// limit disables throttling.
	AuthRateLimit float64
	AuthRateBurst int
	// Sentry enables the Sentry hub middleware. sentry.Init must have run.
	Sentry bool
	// MetricsRegisterer receives the HTTP metrics; nil means the default registry.
	MetricsRegisterer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.DefaultSecureConfig))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	if d.Sentry {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Registerer: d.MetricsRegisterer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Session)
	listingHandler := handler.NewListingHandler(d.ListingService)
	userHandler := handler.NewUserHandler(d.UserService, authHandler)
	requireAuth := middleware.Auth(d.AuthService)

	e.GET("/api", func(c echo.Context) error {
		return response.OK(c, http.StatusOK, welcomeMessage, nil)
	})

	v1 := e.Group(basePath)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	if d.AuthRateLimit > 0 {
		auth.Use(authRateLimiter(d.AuthRateLimit, d.AuthRateBurst))
	}
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/google-auth", authHandler.GoogleAuth)
	auth.GET("/signout", authHandler.Signout)

	// --- Listing routes ---
	listings := v1.Group("/listings")
	listings.GET("", listingHandler.Search)
	listings.GET("/all", listingHandler.All)
	listings.GET("/sale", listingHandler.Sale)
	listings.GET("/homepage", listingHandler.Homepage)
	listings.GET("/:id", listingHandler.Get)
	listings.POST("", listingHandler.Create, requireAuth)
	listings.PUT("/:id", listingHandler.Update, requireAuth)
	listings.DELETE("/:id", listingHandler.Delete, requireAuth)

	// --- User routes ---
	users := v1.Group("/user")
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, requireAuth,
		middleware.RequireSelf("id", "You can only update your own account!"))
	users.DELETE("/:id", userHandler.Delete, requireAuth,
		middleware.RequireSelf("id", "You can only delete your own account!"))
	users.GET("/listings/:id", userHandler.Listings, requireAuth,
		middleware.RequireSelf("id", "You can only view your own listings!"))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// authRateLimiter throttles credential endpoints per client IP.
func authRateLimiter(limit float64, burst int) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return response.Fail(c, http.StatusTooManyRequests, "Too many requests, please try again later.")
		},
	})
}
