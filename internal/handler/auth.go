package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cinema-box-office/internal/model"
	"cinema-box-office/internal/repository"
	"cinema-box-office/internal/utils"
)

// AuthHandler implements login and token management for box-office
// employees.  Accounts are fixed (seeded or restored from a snapshot);
// there is no self-registration.
type AuthHandler struct {
	Users          *repository.UserRepo
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *repository.UserRepo, jwtSecret string, accessTTLMin, refreshTTLDays int) *AuthHandler {
	if users == nil {
		panic("nil user repository passed to NewAuthHandler")
	}
	return &AuthHandler{
		Users:          users,
		JWTSecret:      jwtSecret,
		AccessTTLMin:   accessTTLMin,
		RefreshTTLDays: refreshTTLDays,
	}
}

// Login handles POST /v1/auth/login.  It verifies the credentials and
// issues an access token plus a refresh token.  Unknown users and bad
// passwords are indistinguishable in the response.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	user, err := h.Users.GetByUsername(username)
	if err != nil || !utils.VerifyPassword(user.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.JWTSecret, user.Username, user.AccessLevel, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	refresh, err := utils.NewRefreshToken(h.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	h.Users.StoreRefreshToken(model.RefreshToken{
		Username:  user.Username,
		TokenHash: utils.HashRefreshRaw(refresh.Raw),
		ExpiresAt: refresh.Exp,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":       access.Token,
		"access_expires_at":  access.Exp.Format(time.RFC3339),
		"refresh_token":      refresh.Raw,
		"refresh_expires_at": refresh.Exp.Format(time.RFC3339),
		"access_level":       user.AccessLevel,
	})
}

// Refresh handles POST /v1/auth/refresh.  It rotates the refresh token
// and issues a fresh access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err != nil || body.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}

	hash := utils.HashRefreshRaw(body.RefreshToken)
	stored, err := h.Users.LookupRefreshToken(hash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrTokenInvalid) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify token"})
	}
	user, err := h.Users.GetByUsername(stored.Username)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	// Rotate: the presented token is spent either way.
	h.Users.DeleteRefreshToken(hash)

	access, err := utils.NewAccessToken(h.JWTSecret, user.Username, user.AccessLevel, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	refresh, err := utils.NewRefreshToken(h.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	h.Users.StoreRefreshToken(model.RefreshToken{
		Username:  user.Username,
		TokenHash: utils.HashRefreshRaw(refresh.Raw),
		ExpiresAt: refresh.Exp,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":       access.Token,
		"access_expires_at":  access.Exp.Format(time.RFC3339),
		"refresh_token":      refresh.Raw,
		"refresh_expires_at": refresh.Exp.Format(time.RFC3339),
	})
}

// Logout handles POST /v1/auth/logout.  It revokes the presented
// refresh token; the short-lived access token simply expires.
func (h *AuthHandler) Logout(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err != nil || body.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}
	h.Users.DeleteRefreshToken(utils.HashRefreshRaw(body.RefreshToken))
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/me and returns the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	username, err := getUsername(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Users.GetByUsername(username)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"username":     user.Username,
		"access_level": user.AccessLevel,
	})
}
