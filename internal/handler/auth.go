package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/config"
	"github.com/iliyamo/periodical-store/internal/middleware"
	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/repository"
	"github.com/iliyamo/periodical-store/internal/service"
	"github.com/iliyamo/periodical-store/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Subs   *service.SubscriptionService
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, s *service.SubscriptionService) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Subs: s}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User          model.User               `json:"user"`
	Subscriptions []model.SubscriptionView `json:"subscriptions"`
	Access        tokenPart                `json:"access"`
	Refresh       tokenPart                `json:"refresh"`
}

// Register creates a user account and returns a token pair immediately.
// New accounts always get the user role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return badRequest(c, "email, password and name are required")
	}
	if !strings.Contains(req.Email, "@") {
		return badRequest(c, "invalid email")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return badRequest(c, "password too short")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Name, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return fail(c, err, "user")
	}
	return h.issue(c, http.StatusCreated, u, []model.SubscriptionView{})
}

// Login verifies credentials and returns the user, their active
// subscriptions and a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return fail(c, err, "user")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	subs, err := h.Subs.List(ctx, u.ID, model.SubscriptionActive)
	if err != nil {
		return fail(c, err, "subscription")
	}
	return h.issue(c, http.StatusOK, u, subscriptionViews(subs))
}

// issue stores a fresh refresh token for u and writes the auth response.
func (h *AuthHandler) issue(c echo.Context, status int, u model.User, subs []model.SubscriptionView) error {
	access, err := utils.NewAccessToken(h.Cfg.JWT.Secret, u.ID, u.Role, h.Cfg.JWT.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWT.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	return c.JSON(status, authResp{
		User:          u,
		Subscriptions: subs,
		Access:        tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh:       tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqCtx(c)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	// The conditional revoke decides races between concurrent rotations.
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
		}
		return fail(c, err, "token")
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
		}
		return fail(c, err, "user")
	}
	subs, err := h.Subs.List(ctx, u.ID, model.SubscriptionActive)
	if err != nil {
		return fail(c, err, "subscription")
	}
	return h.issue(c, http.StatusOK, u, subscriptionViews(subs))
}

// RefreshAccess validates a refresh token and returns a new access token
// without rotating the refresh token.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqCtx(c)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
		}
		return fail(c, err, "user")
	}
	access, err := utils.NewAccessToken(h.Cfg.JWT.Secret, userID, u.Role, h.Cfg.JWT.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout revokes one refresh token when refresh_token is in the body, or
// every refresh token of the caller when only a valid bearer token is sent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var uid uint64
	if raw, ok := middleware.BearerToken(c); ok {
		if claims, err := utils.ParseAccessToken(h.Cfg.JWT.Secret, raw); err == nil {
			uid = claims.UserID
		}
	}

	// Invalid JSON leaves RefreshToken empty; the bearer may still suffice.
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqCtx(c)
	defer cancel()

	switch {
	case refreshToken != "":
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	case uid != 0:
		if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	default:
		return badRequest(c, "provide Authorization header or refresh_token")
	}
}

// Me returns the current user as stored.  A token whose user no longer
// exists is answered with 401.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c)
		}
		return fail(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}
