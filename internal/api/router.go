package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/creatorlane/creatorlane/internal/auth"
	"github.com/creatorlane/creatorlane/internal/handlers"
	"github.com/creatorlane/creatorlane/internal/middleware"
	"github.com/creatorlane/creatorlane/internal/notifications"
	"github.com/creatorlane/creatorlane/pkg/mail"
)

// Deps bundles the shared collaborators the router wires into handlers.
type Deps struct {
	DB     *gorm.DB
	JWT    *iauth.JWTService
	Hub    *notifications.Hub
	Mailer mail.Mailer

	// RateLimitRequests/RateLimitWindow throttle each client IP per path.
	// Zero values fall back to 100 requests per minute.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(deps Deps) (*gin.Engine, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	rateRequests := deps.RateLimitRequests
	if rateRequests <= 0 {
		rateRequests = 100
	}
	rateWindow := deps.RateLimitWindow
	if rateWindow <= 0 {
		rateWindow = time.Minute
	}
	r.Use(middleware.RateLimit(rateRequests, rateWindow))

	r.NoRoute(middleware.NotFoundHandler)

	// Public endpoints
	r.GET("/health", handlers.Health(deps.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler, err := handlers.NewAuthHandler(deps.DB, deps.JWT)
	if err != nil {
		return nil, err
	}
	notificationHandler, err := handlers.NewNotificationHandler(deps.DB, deps.Hub, deps.JWT, deps.Mailer)
	if err != nil {
		return nil, err
	}

	r.POST("/api/auth/login", authHandler.Login)
	// Websocket dials carry the token in the query string
	r.GET("/api/notifications/stream", notificationHandler.Stream)

	api := r.Group("/api")
	api.Use(middleware.Auth(deps.JWT))

	api.GET("/auth/me", authHandler.Me)

	if err := registerReviewRoutes(api, deps.DB); err != nil {
		return nil, err
	}
	if err := registerOfferRoutes(api, deps.DB, notificationHandler.Service()); err != nil {
		return nil, err
	}
	if err := registerFlagRoutes(api, deps.DB); err != nil {
		return nil, err
	}
	if err := registerRetainerRoutes(api, deps.DB); err != nil {
		return nil, err
	}
	if err := registerVideoRoutes(api, deps.DB); err != nil {
		return nil, err
	}
	if err := registerNicheRoutes(api, deps.DB); err != nil {
		return nil, err
	}
	if err := registerAnalyticsRoutes(api); err != nil {
		return nil, err
	}
	registerNotificationRoutes(api, notificationHandler)

	return r, nil
}
