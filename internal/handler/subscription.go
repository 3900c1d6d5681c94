package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/service"
)

// SubscriptionHandler lists and cancels the caller's subscriptions.
type SubscriptionHandler struct {
	Subs *service.SubscriptionService
}

func NewSubscriptionHandler(s *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Subs: s}
}

// List handles GET /v1/subscriptions?status=.
func (h *SubscriptionHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.SubscriptionActive, model.SubscriptionCancelled, model.SubscriptionExpired:
	default:
		return fail(c, service.ErrInvalidStatus, "subscription")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	subs, err := h.Subs.List(ctx, uid, status)
	if err != nil {
		return fail(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, subscriptionViews(subs))
}

// Cancel handles POST /v1/subscriptions/:id/cancel.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	sub, err := h.Subs.Cancel(ctx, uid, id)
	if err != nil {
		return fail(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, sub.View())
}
