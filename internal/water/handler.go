package water

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
	router.GET("/water/all", h.ReadAll)
	router.GET("/water/:id", h.ReadByID)
	router.POST("/water/add", h.Add)
	router.PATCH("/water/update/:id", h.Update)
	router.DELETE("/water/delete/:id", h.Delete)
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
	intakes, err := h.service.ReadAll(c.Request.Context(), current.ID)
	if err != nil {
		h.logger.Error("service.ReadAll failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch water intakes"})
		return
	}
	c.JSON(http.StatusOK, intakes)
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
	intake, err := h.service.ReadByID(c.Request.Context(), id, current.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, intake)
	case errors.Is(err, ErrWaterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Water not found"})
	default:
		h.logger.Error("service.ReadByID failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch water intake"})
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
		h.logger.Warn("invalid water payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount_ml must be a positive integer"})
		return
	}
	intake, err := h.service.Add(c.Request.Context(), current.ID, req)
	if err != nil {
		h.logger.Error("service.Add failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add water intake"})
		return
	}
	c.JSON(http.StatusOK, intake)
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
		h.logger.Warn("invalid water update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}
	intake, err := h.service.Update(c.Request.Context(), id, current.ID, req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, intake)
	case errors.Is(err, ErrWaterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Water not found"})
	default:
		h.logger.Error("service.Update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update water intake"})
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
		c.JSON(http.StatusOK, gin.H{"msg": "Water deleted"})
	case errors.Is(err, ErrWaterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Water not found"})
	default:
		h.logger.Error("service.Delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete water intake"})
	}
}
