package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/service"
)

// CartHandler serves the caller's cart.  Every route requires JWTAuth.
type CartHandler struct {
	Carts *service.CartService
}

func NewCartHandler(s *service.CartService) *CartHandler { return &CartHandler{Carts: s} }

type addCartItemReq struct {
	PublicationID uint64 `json:"publicationId"`
}

// View handles GET /v1/cart.
func (h *CartHandler) View(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Carts.View(ctx, uid)
	if err != nil {
		return fail(c, err, "cart")
	}
	return c.JSON(http.StatusOK, v)
}

// Add handles POST /v1/cart/items.  Adding a publication already in the
// cart returns the unchanged cart.
func (h *CartHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req addCartItemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.PublicationID == 0 {
		return badRequest(c, "publicationId required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Carts.Add(ctx, uid, req.PublicationID)
	if err != nil {
		return fail(c, err, "publication")
	}
	return c.JSON(http.StatusOK, v)
}

// Remove handles DELETE /v1/cart/items/:publicationId.
func (h *CartHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	pid, ok := parseID(c, "publicationId")
	if !ok {
		return badRequest(c, "invalid publicationId")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Carts.Remove(ctx, uid, pid)
	if err != nil {
		return fail(c, err, "cart item")
	}
	return c.JSON(http.StatusOK, v)
}

// Clear handles DELETE /v1/cart.
func (h *CartHandler) Clear(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Carts.Clear(ctx, uid)
	if err != nil {
		return fail(c, err, "cart")
	}
	return c.JSON(http.StatusOK, v)
}
