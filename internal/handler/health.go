package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	DB *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Health returns "ok" when the database answers a ping within two seconds
// and 503 otherwise.  It is used by load balancers and monitoring systems.
func (h *HealthHandler) Health(c echo.Context) error {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := h.DB.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			return c.String(http.StatusServiceUnavailable, "db unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}
