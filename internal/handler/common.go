package handler // handler defines the HTTP handlers of the storefront API

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/middleware"
	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/repository"
	"github.com/iliyamo/periodical-store/internal/service"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 5 * time.Second

var errNoUser = errors.New("invalid user_id in context")

// getUserID returns the authenticated caller's id set by JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := middleware.UserID(c); ok {
		return id, nil
	}
	return 0, errNoUser
}

func isAdmin(c echo.Context) bool {
	role, _ := middleware.Role(c)
	return role == model.RoleAdmin
}

// reqCtx derives the per-request context with requestTimeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	return id, err == nil && id > 0
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

// fail maps a repository or service error to its status code and message.
// resource names the entity in 404 messages.
func fail(c echo.Context, err error, resource string) error {
	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status, msg = http.StatusNotFound, resource+" not found"
	case errors.Is(err, repository.ErrForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrEmptyCart):
		status, msg = http.StatusBadRequest, "Cart is empty"
	case errors.Is(err, service.ErrInsufficientPoints):
		status, msg = http.StatusBadRequest, "Insufficient points"
	case errors.Is(err, service.ErrPointsExceedTotal):
		status, msg = http.StatusBadRequest, "Points exceed order total"
	case errors.Is(err, service.ErrInvalidPoints):
		status, msg = http.StatusBadRequest, "Points must not be negative"
	case errors.Is(err, service.ErrInvalidRating):
		status, msg = http.StatusBadRequest, "Rating must be between 1 and 5"
	case errors.Is(err, service.ErrNotPurchased):
		status, msg = http.StatusForbidden, "You can only review items you have purchased"
	case errors.Is(err, service.ErrDuplicateReview):
		status, msg = http.StatusBadRequest, "You have already reviewed this publication"
	case errors.Is(err, service.ErrInvalidStatus):
		status, msg = http.StatusBadRequest, "Invalid status"
	case errors.Is(err, service.ErrSubscriptionNotActive):
		status, msg = http.StatusConflict, "Subscription is not active"
	case errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusServiceUnavailable, "request timed out"
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// orderView is an order with the buyer's public summary.
type orderView struct {
	model.Order
	User *model.UserSummary `json:"user,omitempty"`
}

func newOrderView(o model.Order) orderView {
	v := orderView{Order: o}
	if o.Items == nil {
		v.Items = []model.OrderItem{}
	}
	if o.User != nil {
		s := o.User.Summary()
		v.User = &s
	}
	return v
}

func orderViews(orders []model.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderView(o))
	}
	return out
}

// reviewView is a review with its author and publication summaries.
type reviewView struct {
	model.Review
	User        *model.UserSummary        `json:"user,omitempty"`
	Publication *model.PublicationSummary `json:"publication,omitempty"`
}

func newReviewView(r model.Review) reviewView {
	v := reviewView{Review: r}
	if r.User != nil {
		s := r.User.Summary()
		v.User = &s
	}
	if r.Publication != nil {
		s := r.Publication.Summary()
		v.Publication = &s
	}
	return v
}

func reviewViews(rs []model.Review) []reviewView {
	out := make([]reviewView, 0, len(rs))
	for _, r := range rs {
		out = append(out, newReviewView(r))
	}
	return out
}

func subscriptionViews(subs []model.Subscription) []model.SubscriptionView {
	out := make([]model.SubscriptionView, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.View())
	}
	return out
}
