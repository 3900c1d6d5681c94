package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/repository"
	"github.com/iliyamo/periodical-store/internal/service"
)

// ReviewHandler serves public review listings and review submission.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
	Svc     *service.ReviewService
}

func NewReviewHandler(r *repository.ReviewRepo, s *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Svc: s}
}

type createReviewReq struct {
	PublicationID uint64 `json:"publicationId"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// List handles GET /v1/reviews?publicationId=&status=.  status defaults to
// approved.
func (h *ReviewHandler) List(c echo.Context) error {
	pid, err := strconv.ParseUint(strings.TrimSpace(c.QueryParam("publicationId")), 10, 64)
	if err != nil || pid == 0 {
		return badRequest(c, "publicationId is required")
	}
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
	if status == "" {
		status = model.ReviewApproved
	}
	if !model.ValidReviewStatus(status) {
		return fail(c, service.ErrInvalidStatus, "review")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rs, err := h.Reviews.ListForPublication(ctx, pid, status)
	if err != nil {
		return fail(c, err, "review")
	}
	return c.JSON(http.StatusOK, reviewViews(rs))
}

// Create handles POST /v1/reviews.  New reviews wait for moderation.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.PublicationID == 0 {
		return badRequest(c, "publicationId required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rv, err := h.Svc.Create(ctx, uid, req.PublicationID, req.Rating, req.Comment)
	if err != nil {
		return fail(c, err, "publication")
	}
	return c.JSON(http.StatusCreated, newReviewView(rv))
}

// Mine handles GET /v1/my-reviews.
func (h *ReviewHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rs, err := h.Reviews.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, err, "review")
	}
	return c.JSON(http.StatusOK, reviewViews(rs))
}
