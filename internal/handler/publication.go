package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/catalog"
	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/pricing"
	"github.com/iliyamo/periodical-store/internal/repository"
)

// PublicationHandler serves the public catalogue.
type PublicationHandler struct {
	Pubs *repository.PublicationRepo
}

func NewPublicationHandler(p *repository.PublicationRepo) *PublicationHandler {
	return &PublicationHandler{Pubs: p}
}

// publicationView adds the points a purchase would roughly earn.
type publicationView struct {
	model.Publication
	RewardPoints int64 `json:"rewardPoints"`
}

func publicationViews(pubs []model.Publication) []publicationView {
	out := make([]publicationView, 0, len(pubs))
	for _, p := range pubs {
		out = append(out, publicationView{Publication: p, RewardPoints: pricing.RewardPoints(p)})
	}
	return out
}

// List handles GET /v1/publications.  Query parameters: q, type, category,
// city, featured=true and sort.
func (h *PublicationHandler) List(c echo.Context) error {
	featured, _ := strconv.ParseBool(strings.TrimSpace(c.QueryParam("featured")))
	crit := catalog.Criteria{
		Search:   c.QueryParam("q"),
		Type:     strings.TrimSpace(c.QueryParam("type")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		City:     strings.TrimSpace(c.QueryParam("city")),
		Featured: featured,
		Sort:     strings.TrimSpace(c.QueryParam("sort")),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	pubs, err := h.Pubs.List(ctx)
	if err != nil {
		return fail(c, err, "publication")
	}
	return c.JSON(http.StatusOK, publicationViews(catalog.Filter(pubs, crit)))
}

// Get handles GET /v1/publications/:id.
func (h *PublicationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Pubs.GetByID(ctx, id)
	if err != nil {
		return fail(c, err, "publication")
	}
	return c.JSON(http.StatusOK, publicationView{Publication: p, RewardPoints: pricing.RewardPoints(p)})
}

// Cities handles GET /v1/publications/cities.
func (h *PublicationHandler) Cities(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	pubs, err := h.Pubs.List(ctx)
	if err != nil {
		return fail(c, err, "publication")
	}
	return c.JSON(http.StatusOK, catalog.Cities(pubs))
}

// Categories handles GET /v1/publications/categories.
func (h *PublicationHandler) Categories(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	pubs, err := h.Pubs.List(ctx)
	if err != nil {
		return fail(c, err, "publication")
	}
	return c.JSON(http.StatusOK, catalog.Categories(pubs))
}
