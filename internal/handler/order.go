package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/repository"
	"github.com/iliyamo/periodical-store/internal/service"
)

// OrderHandler serves order history and checkout.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Checkout *service.CheckoutService
}

func NewOrderHandler(o *repository.OrderRepo, co *service.CheckoutService) *OrderHandler {
	return &OrderHandler{Orders: o, Checkout: co}
}

type checkoutReq struct {
	PointsToUse int64 `json:"pointsToUse"`
}

// List handles GET /v1/orders: the caller's orders, newest first.
func (h *OrderHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.Orders.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, err, "order")
	}
	return c.JSON(http.StatusOK, orderViews(orders))
}

// Create handles POST /v1/orders.  The body is optional; pointsToUse
// defaults to zero.
func (h *OrderHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Checkout.Checkout(ctx, uid, req.PointsToUse)
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(http.StatusCreated, newOrderView(o))
}

// Get handles GET /v1/orders/:id.  Only the buyer or an admin may read an
// order.
func (h *OrderHandler) Get(c echo.Context) error {
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

	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return fail(c, err, "order")
	}
	if o.UserID != uid && !isAdmin(c) {
		return fail(c, repository.ErrForbidden, "order")
	}
	return c.JSON(http.StatusOK, newOrderView(o))
}
