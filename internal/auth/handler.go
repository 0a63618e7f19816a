package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
	RefreshCookieName = "refresh_token"
	// RefreshCookiePath pins the cookie to the refresh endpoint so it is
	// not sent on unrelated requests.
	RefreshCookiePath = "/api/v1/users/refresh"
)

// LoginRequest is the form payload for the token endpoint.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// AccessTokenResponse carries only the access token; the refresh token
// travels exclusively in the cookie.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Handler handles the session endpoints.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler registers session endpoints. Refresh sits behind the auth guard
// because it requires a valid access token on top of the cookie.
func NewHandler(public, protected *gin.RouterGroup, service Service, logger *zap.Logger) *Handler {
	h := &Handler{service: service, logger: logger}
	public.POST("/users/token", h.Token)
	public.POST("/users/logout", h.Logout)
	protected.POST("/users/refresh", h.Refresh)
	return h
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, token, int(h.service.RefreshTTL().Seconds()), RefreshCookiePath, "", true, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, RefreshCookiePath, "", true, true)
}

func (h *Handler) Token(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}
	access, refresh, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		h.setRefreshCookie(c, refresh)
		c.JSON(http.StatusOK, AccessTokenResponse{AccessToken: access, TokenType: "bearer"})
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, ErrIncorrectPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
	default:
		h.logger.Error("Login service failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
	}
}

func (h *Handler) Refresh(c *gin.Context) {
	current, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	refreshToken, err := c.Cookie(RefreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}
	access, refresh, err := h.service.Refresh(c.Request.Context(), refreshToken, current)
	switch {
	case err == nil:
		h.setRefreshCookie(c, refresh)
		c.JSON(http.StatusOK, AccessTokenResponse{AccessToken: access, TokenType: "bearer"})
	case errors.Is(err, ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	default:
		h.logger.Error("Refresh service failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not refresh token"})
	}
}

// Logout always answers 200: with no live session there is nothing to do.
func (h *Handler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshCookieName)
	if err == nil && refreshToken != "" {
		if err := h.service.Logout(c.Request.Context(), refreshToken); err != nil {
			h.logger.Warn("Logout service failed", zap.Error(err))
		}
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out"})
}
