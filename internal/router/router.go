package router // package router defines how HTTP routes are registered for the API

import (
	"context"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/config"
	"github.com/iliyamo/hbnb/internal/handler"    // import the handlers that implement the endpoints
	"github.com/iliyamo/hbnb/internal/middleware" // request id, logging, auth and caching middleware
	"github.com/iliyamo/hbnb/internal/service"
)

// APIPrefix is the root of every resource route.
const APIPrefix = "/api/v1"

// Deps is everything the routes need. Redis may be nil, which disables the
// response cache and the login rate limiter. Ping, when set, backs the
// health check.
type Deps struct {
	Cfg   *config.Config
	Svc   *service.Service
	Redis *redis.Client
	Log   zerolog.Logger
	Ping  func(context.Context) error
}

// New builds the Echo instance with the global middleware chain and
// registers every route.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.GlobalErrorHandler

	// Order matters: the request id feeds the context logger, which the
	// access log and Authenticate both use.
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.ContextEnhancer(d.Log))
	e.Use(middleware.RequestLogger())
	if len(d.Cfg.Server.CORSAllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: d.Cfg.Server.CORSAllowedOrigins}))
	}
	e.Use(middleware.Authenticate(d.Cfg.Auth.JWTSecret))

	RegisterRoutes(e, handler.NewHealthHandler(d.Ping))
	api := e.Group(APIPrefix)
	RegisterAuth(api, handler.NewAuthHandler(d.Svc, d.Cfg.Auth.JWTSecret, d.Cfg.Auth.AccessTTL), d.Redis, d.Cfg.RateLimit)

	// Resource routes share the response cache; every successful write
	// bumps its generation.
	res := api.Group("",
		middleware.Invalidate(d.Redis, d.Cfg.Cache),
		middleware.Cache(d.Redis, d.Cfg.Cache),
	)
	places := handler.NewPlaceHandler(d.Svc)
	RegisterUsers(res, handler.NewUserHandler(d.Svc))
	RegisterAmenities(res, handler.NewAmenityHandler(d.Svc))
	RegisterPlaces(res, places)
	RegisterReviews(res, handler.NewReviewHandler(d.Svc), places)
	return e
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler) {
	e.GET("/health", health.Check)
}

// RegisterAuth registers the login and token-check endpoints. Login is
// rate limited per ip because it is the only route that verifies
// passwords.
func RegisterAuth(api *echo.Group, a *handler.AuthHandler, rdb *redis.Client, rl config.RateLimitConfig) {
	g := api.Group("/auth")
	g.POST("/login", a.Login, middleware.RateLimit(rdb, rl))
	g.GET("/protected", a.Protected, middleware.Require(access.Authenticated))
}
