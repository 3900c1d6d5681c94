package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/middleware"
	"github.com/iliyamo/periodical-store/internal/model"
)

// RegisterUser registers the signed-in shopper's endpoints under /v1.  All
// routes require a valid JWT; admins may use them too.
func RegisterUser(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	)

	// ---- Cart ----
	g.GET("/cart", h.Cart.View)
	g.POST("/cart/items", h.Cart.Add)
	g.DELETE("/cart/items/:publicationId", h.Cart.Remove)
	g.DELETE("/cart", h.Cart.Clear)

	// ---- Orders ----
	g.GET("/orders", h.Orders.List)
	g.POST("/orders", h.Orders.Create)
	// Owner or admin; checked in the handler.
	g.GET("/orders/:id", h.Orders.Get)

	// ---- Reviews ----
	g.POST("/reviews", h.Reviews.Create)
	g.GET("/my-reviews", h.Reviews.Mine)

	// ---- Subscriptions ----
	g.GET("/subscriptions", h.Subscriptions.List)
	g.POST("/subscriptions/:id/cancel", h.Subscriptions.Cancel)
}
