package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/repository"
	"github.com/iliyamo/periodical-store/internal/service"
)

// AdminHandler serves the /v1/admin dashboard.  Routes are guarded by
// RequireRole("admin").
type AdminHandler struct {
	Users   *repository.UserRepo
	Orders  *repository.OrderRepo
	Reviews *repository.ReviewRepo
	Svc     *service.ReviewService
}

func NewAdminHandler(u *repository.UserRepo, o *repository.OrderRepo, r *repository.ReviewRepo, s *service.ReviewService) *AdminHandler {
	return &AdminHandler{Users: u, Orders: o, Reviews: r, Svc: s}
}

type moderateReq struct {
	Status string `json:"status"`
}

type statsResp struct {
	PendingReviews int64           `json:"pendingReviews"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalUsers     int64           `json:"totalUsers"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

// ListOrders handles GET /v1/admin/orders?status=.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.Orders.ListAll(ctx, strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return fail(c, err, "order")
	}
	return c.JSON(http.StatusOK, orderViews(orders))
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.ListWithCounts(ctx)
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(http.StatusOK, users)
}

// ListReviews handles GET /v1/admin/reviews?status=.  An empty status lists
// every review.
func (h *AdminHandler) ListReviews(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !model.ValidReviewStatus(status) {
		return fail(c, service.ErrInvalidStatus, "review")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rs, err := h.Reviews.ListAll(ctx, status)
	if err != nil {
		return fail(c, err, "review")
	}
	return c.JSON(http.StatusOK, reviewViews(rs))
}

// GetReview handles GET /v1/admin/reviews/:id.
func (h *AdminHandler) GetReview(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		return fail(c, err, "review")
	}
	return c.JSON(http.StatusOK, newReviewView(rv))
}

// ModerateReview handles PATCH /v1/admin/reviews/:id with
// {"status":"approved"|"rejected"}.
func (h *AdminHandler) ModerateReview(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req moderateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rv, err := h.Svc.Moderate(ctx, id, strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		return fail(c, err, "review")
	}
	return c.JSON(http.StatusOK, newReviewView(rv))
}

// DeleteReview handles DELETE /v1/admin/reviews/:id.
func (h *AdminHandler) DeleteReview(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(c, err, "review")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted successfully"})
}

// Stats handles GET /v1/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		out statsResp
		err error
	)
	if out.PendingReviews, err = h.Reviews.CountByStatus(ctx, model.ReviewPending); err != nil {
		return fail(c, err, "review")
	}
	if out.TotalOrders, err = h.Orders.Count(ctx); err != nil {
		return fail(c, err, "order")
	}
	if out.TotalUsers, err = h.Users.Count(ctx); err != nil {
		return fail(c, err, "user")
	}
	if out.TotalRevenue, err = h.Orders.Revenue(ctx); err != nil {
		return fail(c, err, "order")
	}
	return c.JSON(http.StatusOK, out)
}
