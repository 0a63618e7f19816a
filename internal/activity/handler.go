package activity

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

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(router *gin.RouterGroup, service Service, logger *zap.Logger) *Handler {
	h := &Handler{service: service, logger: logger}
	router.GET("/activity/all", h.ReadAll)
	router.GET("/activity/:id", h.ReadByID)
	router.POST("/activity/add", h.Add)
	router.PATCH("/activity/update/:id", h.Update)
	router.DELETE("/activity/delete/:id", h.Delete)
	return h
}

func (h *Handler) bindID(c *gin.Context) (uint, bool) {
	var uri idRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return 0, false
	}
	return uri.ID, true
}

func (h *Handler) ReadAll(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	activities, err := h.service.ReadAll(c.Request.Context(), current.ID)
	if err != nil {
		h.logger.Error("service.ReadAll failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch activities"})
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *Handler) ReadByID(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	activity, err := h.service.ReadByID(c.Request.Context(), id, current.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, activity)
	case errors.Is(err, ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	default:
		h.logger.Error("service.ReadByID failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch activity"})
	}
}

func (h *Handler) Add(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid activity payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity payload"})
		return
	}
	activity, err := h.service.Add(c.Request.Context(), current.ID, req)
	if err != nil {
		h.logger.Error("service.Add failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add activity"})
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (h *Handler) Update(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid activity update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}
	activity, err := h.service.Update(c.Request.Context(), id, current.ID, req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, activity)
	case errors.Is(err, ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	default:
		h.logger.Error("service.Update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update activity"})
	}
}

func (h *Handler) Delete(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	err := h.service.Delete(c.Request.Context(), id, current.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"msg": "Activity deleted"})
	case errors.Is(err, ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	default:
		h.logger.Error("service.Delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete activity"})
	}
}
