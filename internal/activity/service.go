package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/audit"
)

const objectType = "activity"

type Service interface {
	Add(ctx context.Context, userID uint, req CreateRequest) (*Activity, error)
	ReadAll(ctx context.Context, userID uint) ([]Activity, error)
	ReadByID(ctx context.Context, id, userID uint) (*Activity, error)
	Update(ctx context.Context, id, userID uint, req UpdateRequest) (*Activity, error)
	Delete(ctx context.Context, id, userID uint) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger *zap.Logger) Service {
	return &service{repo: repo, recorder: recorder, logger: logger}
}

func (s *service) Add(ctx context.Context, userID uint, req CreateRequest) (*Activity, error) {
	activity := &Activity{
		UserID:         userID,
		Type:           req.Type,
		DurationMin:    req.DurationMin,
		CaloriesBurned: req.CaloriesBurned,
		PerformedAt:    time.Now().UTC(),
	}
	if req.PerformedAt != nil {
		activity.PerformedAt = *req.PerformedAt
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		s.logger.Error("failed to create activity", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionAdd,
		ObjectType: objectType,
		ObjectID:   activity.ID,
		Payload:    activity.snapshot(),
	})
	return activity, nil
}

func (s *service) ReadAll(ctx context.Context, userID uint) ([]Activity, error) {
	return s.repo.ReadAllByUserID(ctx, userID)
}

func (s *service) ReadByID(ctx context.Context, id, userID uint) (*Activity, error) {
	return s.repo.ReadByIDForUser(ctx, id, userID)
}

func (s *service) Update(ctx context.Context, id, userID uint, req UpdateRequest) (*Activity, error) {
	activity, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		activity.Type = *req.Type
	}
	if req.DurationMin != nil {
		activity.DurationMin = *req.DurationMin
	}
	if req.CaloriesBurned != nil {
		activity.CaloriesBurned = *req.CaloriesBurned
	}
	if req.PerformedAt != nil {
		activity.PerformedAt = *req.PerformedAt
	}
	if err := s.repo.Update(ctx, activity); err != nil {
		s.logger.Error("failed to update activity", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionUpdate,
		ObjectType: objectType,
		ObjectID:   activity.ID,
		Payload:    activity.snapshot(),
	})
	return activity, nil
}

func (s *service) Delete(ctx context.Context, id, userID uint) error {
	activity, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("failed to delete activity", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionDelete,
		ObjectType: objectType,
		ObjectID:   activity.ID,
		Payload:    activity.snapshot(),
	})
	return nil
}
