package meal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/audit"
)

const objectType = "meal"

var ErrNoImage = errors.New("meal has no image")

// ObjectStore is the slice of the blob backend the meal service needs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// ImageUpload is an incoming meal photo.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateInput is the decoded multipart form for adding a meal.
type CreateInput struct {
	Name          string
	Notes         string
	TotalCalories float64
	FoodItemIDs   []uint
	Image         *ImageUpload
}

type Service interface {
	Add(ctx context.Context, userID uint, in CreateInput) (*Meal, error)
	ReadAll(ctx context.Context, userID uint) ([]Meal, error)
	ReadByID(ctx context.Context, id, userID uint) (*Meal, error)
	// Image streams the meal's photo. The caller owns closing the reader.
	Image(ctx context.Context, id, userID uint) (io.ReadCloser, string, string, error)
	Delete(ctx context.Context, id, userID uint) error
}

type service struct {
	repo     Repository
	store    ObjectStore
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, store ObjectStore, recorder audit.Recorder, logger *zap.Logger) Service {
	return &service{repo: repo, store: store, recorder: recorder, logger: logger}
}

func (s *service) Add(ctx context.Context, userID uint, in CreateInput) (*Meal, error) {
	meal := &Meal{
		UserID:        userID,
		Name:          in.Name,
		Notes:         in.Notes,
		TotalCalories: in.TotalCalories,
		EatenAt:       time.Now().UTC(),
	}
	if meal.Name == "" {
		meal.Name = "meal"
	}
	for _, foodID := range in.FoodItemIDs {
		meal.Items = append(meal.Items, MealItem{FoodItemID: foodID, Quantity: 1, Unit: "serving"})
	}

	if in.Image != nil {
		key := fmt.Sprintf("%s_%s", strings.ReplaceAll(uuid.NewString(), "-", ""), in.Image.Filename)
		if err := s.store.Put(ctx, key, in.Image.ContentType, in.Image.Body, in.Image.Size); err != nil {
			s.logger.Error("failed to upload meal image", zap.String("key", key), zap.Error(err))
			return nil, err
		}
		meal.ImageObject = key
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		s.logger.Error("failed to create meal", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionAdd,
		ObjectType: objectType,
		ObjectID:   meal.ID,
		Payload:    meal.snapshot(),
	})
	return meal, nil
}

func (s *service) ReadAll(ctx context.Context, userID uint) ([]Meal, error) {
	return s.repo.ReadAllByUserID(ctx, userID)
}

func (s *service) ReadByID(ctx context.Context, id, userID uint) (*Meal, error) {
	return s.repo.ReadByIDForUser(ctx, id, userID)
}

func (s *service) Image(ctx context.Context, id, userID uint) (io.ReadCloser, string, string, error) {
	meal, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, "", "", err
	}
	if meal.ImageObject == "" {
		return nil, "", "", ErrNoImage
	}
	body, contentType, err := s.store.Get(ctx, meal.ImageObject)
	if err != nil {
		s.logger.Error("failed to fetch meal image", zap.String("key", meal.ImageObject), zap.Error(err))
		return nil, "", "", err
	}
	return body, contentType, meal.ImageObject, nil
}

func (s *service) Delete(ctx context.Context, id, userID uint) error {
	meal, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("failed to delete meal", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if meal.ImageObject != "" {
		if err := s.store.Delete(ctx, meal.ImageObject); err != nil {
			s.logger.Warn("failed to delete meal image", zap.String("key", meal.ImageObject), zap.Error(err))
		}
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionDelete,
		ObjectType: objectType,
		ObjectID:   meal.ID,
		Payload:    meal.snapshot(),
	})
	return nil
}
