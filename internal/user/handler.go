package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Timezone string `json:"timezone"`
}

// Handler handles account HTTP endpoints.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler registers account endpoints. Registration stays open; the
// listing sits behind the auth guard.
func NewHandler(public, protected *gin.RouterGroup, service Service, logger *zap.Logger) *Handler {
	h := &Handler{service: service, logger: logger}
	public.POST("/users/register", h.Register)
	protected.GET("/users/all", h.ReadAllUsers)
	return h
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}
	u, err := h.service.Register(c.Request.Context(), req.Email, req.Name, req.Password, req.Timezone)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, u.Public())
	case errors.Is(err, ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, ErrInvalidEmailFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
	default:
		h.logger.Error("service.Register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
	}
}

// ReadAllUsers returns every account's public record. There is no ownership
// scoping here on purpose: the original exposes this as an admin-style
// listing.
func (h *Handler) ReadAllUsers(c *gin.Context) {
	users, err := h.service.ReadAllUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("service.ReadAllUsers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	public := make([]PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	c.JSON(http.StatusOK, public)
}
