package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/handler"
	"github.com/iliyamo/periodical-store/internal/middleware"
	"github.com/iliyamo/periodical-store/internal/model"
)

// RegisterAdmin registers the admin dashboard under /v1/admin.  All routes
// require a valid JWT and the admin role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/orders", a.ListOrders)
	g.GET("/users", a.ListUsers)
	g.GET("/stats", a.Stats)

	g.GET("/reviews", a.ListReviews)
	g.GET("/reviews/:id", a.GetReview)
	g.PATCH("/reviews/:id", a.ModerateReview)
	g.DELETE("/reviews/:id", a.DeleteReview)
}
