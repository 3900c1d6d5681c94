package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/config"
	"github.com/iliyamo/periodical-store/internal/handler"
	"github.com/iliyamo/periodical-store/internal/middleware"
	"github.com/iliyamo/periodical-store/internal/repository"
	"github.com/iliyamo/periodical-store/internal/service"
)

// Deps carries the infrastructure the routes are built on.  Redis may be
// nil, in which case caching and rate limiting are disabled.  A nil
// Publisher discards order events.
type Deps struct {
	Cfg       config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher service.Publisher
}

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Publications  *handler.PublicationHandler
	Cart          *handler.CartHandler
	Orders        *handler.OrderHandler
	Reviews       *handler.ReviewHandler
	Subscriptions *handler.SubscriptionHandler
	Admin         *handler.AdminHandler
}

// NewHandlers wires repositories and services into handlers.
func NewHandlers(d Deps) Handlers {
	users := repository.NewUserRepo(d.DB)
	tokens := repository.NewTokenRepo(d.DB)
	pubs := repository.NewPublicationRepo(d.DB)
	carts := repository.NewCartRepo(d.DB)
	orders := repository.NewOrderRepo(d.DB)
	reviews := repository.NewReviewRepo(d.DB)

	subSvc := service.NewSubscriptionService(d.DB)
	reviewSvc := service.NewReviewService(d.DB)

	return Handlers{
		Health:        handler.NewHealthHandler(d.DB),
		Auth:          handler.NewAuthHandler(d.Cfg, users, tokens, subSvc),
		Publications:  handler.NewPublicationHandler(pubs),
		Cart:          handler.NewCartHandler(service.NewCartService(carts, pubs)),
		Orders:        handler.NewOrderHandler(orders, service.NewCheckoutService(d.DB, d.Publisher)),
		Reviews:       handler.NewReviewHandler(reviews, reviewSvc),
		Subscriptions: handler.NewSubscriptionHandler(subSvc),
		Admin:         handler.NewAdminHandler(users, orders, reviews, reviewSvc),
	}
}

// New builds the Echo instance with global middleware and every route.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				c.Logger().Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	// OptionalJWT runs first so the limiter can key by user.
	e.Use(middleware.OptionalJWT(d.Cfg.JWT.Secret))
	e.Use(middleware.NewTokenBucket(d.Cfg.RateLimit, d.Redis))

	h := NewHandlers(d)
	RegisterRoutes(e, h.Health)
	RegisterAuth(e, h.Auth, d.Cfg.JWT.Secret)
	RegisterPublic(e, h, middleware.NewRedisCache(d.Cfg.Cache, d.Redis))
	RegisterUser(e, h, d.Cfg.JWT.Secret)
	RegisterAdmin(e, h.Admin, d.Cfg.JWT.Secret)
	return e
}

// RegisterRoutes registers routes that do not require authentication and
// sit outside the versioned API.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, hh *handler.HealthHandler) {
	e.GET("/healthz", hh.Health)
}

// RegisterAuth registers authentication routes.  Token exchange lives under
// /v1/auth; the current-user endpoint requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Accepts a refresh_token body or a bearer token; no JWT middleware.
	g.POST("/logout", a.Logout)

	e.GET("/v1/users/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers guest-readable catalogue and review listings.
// Publication reads go through the response cache; review listings do not
// so that freshly moderated reviews show up at once.
func RegisterPublic(e *echo.Echo, h Handlers, cache echo.MiddlewareFunc) {
	p := e.Group("/v1/publications", cache)
	p.GET("", h.Publications.List)
	p.GET("/cities", h.Publications.Cities)
	p.GET("/categories", h.Publications.Categories)
	p.GET("/:id", h.Publications.Get)

	e.GET("/v1/reviews", h.Reviews.List)
}
