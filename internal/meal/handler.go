package meal

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

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
	router.GET("/meal/all", h.ReadAll)
	router.GET("/meal/:id", h.ReadByID)
	router.GET("/meal/:id/image", h.Image)
	router.POST("/meal/add", h.Add)
	router.DELETE("/meal/delete/:id", h.Delete)
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
	meals, err := h.service.ReadAll(c.Request.Context(), current.ID)
	if err != nil {
		h.logger.Error("service.ReadAll failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch meals"})
		return
	}
	c.JSON(http.StatusOK, meals)
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
	meal, err := h.service.ReadByID(c.Request.Context(), id, current.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, meal)
	case errors.Is(err, ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
	default:
		h.logger.Error("service.ReadByID failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch meal"})
	}
}

// Add accepts a multipart form: an optional image file plus name, notes,
// total_calories and a comma-separated list of food item ids.
func (h *Handler) Add(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	in := CreateInput{
		Name:  c.PostForm("name"),
		Notes: c.PostForm("notes"),
	}
	if raw := c.PostForm("total_calories"); raw != "" {
		calories, err := strconv.ParseFloat(raw, 64)
		if err != nil || calories < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "total_calories must be a non-negative number"})
			return
		}
		in.TotalCalories = calories
	}
	if raw := c.PostForm("items"); raw != "" {
		ids, err := parseItemIDs(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "items must be a comma-separated list of ids"})
			return
		}
		in.FoodItemIDs = ids
	}

	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded image", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
			return
		}
		defer file.Close()
		in.Image = &ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        file,
		}
	}

	meal, err := h.service.Add(c.Request.Context(), current.ID, in)
	if err != nil {
		h.logger.Error("service.Add failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *Handler) Image(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	body, contentType, filename, err := h.service.Image(c.Request.Context(), id, current.ID)
	switch {
	case err == nil:
		defer body.Close()
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
		c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
	case errors.Is(err, ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
	case errors.Is(err, ErrNoImage):
		c.JSON(http.StatusNotFound, gin.H{"error": "No image for this meal"})
	default:
		h.logger.Error("service.Image failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch meal image"})
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
		c.JSON(http.StatusOK, gin.H{"msg": "Meal deleted"})
	case errors.Is(err, ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
	default:
		h.logger.Error("service.Delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete meal"})
	}
}

func parseItemIDs(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
