package audit

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/auth"
)

type idRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// CreateRequest is the payload for a client-submitted audit entry. The owner
// is always the authenticated caller, never part of the payload.
type CreateRequest struct {
	Action     Action                 `json:"action" binding:"required"`
	ObjectType string                 `json:"object_type" binding:"required"`
	ObjectID   uint                   `json:"object_id"`
	Payload    map[string]interface{} `json:"payload"`
}

// Handler exposes read access to the caller's own audit trail.
type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(router *gin.RouterGroup, repo Repository, logger *zap.Logger) *Handler {
	h := &Handler{repo: repo, logger: logger}
	router.GET("/audit/all", h.ReadAll)
	router.GET("/audit/:id", h.ReadByID)
	router.POST("/audit/add", h.Add)
	return h
}

func (h *Handler) Add(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid audit payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audit payload"})
		return
	}
	log := &AuditLog{
		UserID:     current.ID,
		Action:     req.Action,
		ObjectType: req.ObjectType,
		ObjectID:   req.ObjectID,
		Payload:    req.Payload,
	}
	if err := h.repo.Create(c.Request.Context(), log); err != nil {
		h.logger.Error("failed to create audit record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create audit record"})
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *Handler) ReadAll(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	logs, err := h.repo.ReadAllByUserID(c.Request.Context(), current.ID)
	if err != nil {
		h.logger.Error("failed to list audit records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch audit records"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) ReadByID(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var uri idRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return
	}
	log, err := h.repo.ReadByID(c.Request.Context(), uri.ID)
	switch {
	case err == nil && log.UserID == current.ID:
		c.JSON(http.StatusOK, log)
	case err == nil, errors.Is(err, ErrAuditNotFound):
		// Records owned by someone else are indistinguishable from
		// missing ones.
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
	default:
		h.logger.Error("failed to fetch audit record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch audit record"})
	}
}
