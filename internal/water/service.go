package water

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/audit"
)

const objectType = "water"

type Service interface {
	Add(ctx context.Context, userID uint, req CreateRequest) (*WaterIntake, error)
	ReadAll(ctx context.Context, userID uint) ([]WaterIntake, error)
	ReadByID(ctx context.Context, id, userID uint) (*WaterIntake, error)
	Update(ctx context.Context, id, userID uint, req UpdateRequest) (*WaterIntake, error)
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

func (s *service) Add(ctx context.Context, userID uint, req CreateRequest) (*WaterIntake, error) {
	intake := &WaterIntake{
		UserID:     userID,
		AmountML:   req.AmountML,
		RecordedAt: time.Now().UTC(),
	}
	if req.RecordedAt != nil {
		intake.RecordedAt = *req.RecordedAt
	}
	if err := s.repo.Create(ctx, intake); err != nil {
		s.logger.Error("failed to create water intake", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionAdd,
		ObjectType: objectType,
		ObjectID:   intake.ID,
		Payload:    intake.snapshot(),
	})
	return intake, nil
}

func (s *service) ReadAll(ctx context.Context, userID uint) ([]WaterIntake, error) {
	return s.repo.ReadAllByUserID(ctx, userID)
}

func (s *service) ReadByID(ctx context.Context, id, userID uint) (*WaterIntake, error) {
	return s.repo.ReadByIDForUser(ctx, id, userID)
}

func (s *service) Update(ctx context.Context, id, userID uint, req UpdateRequest) (*WaterIntake, error) {
	intake, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.AmountML != nil {
		intake.AmountML = *req.AmountML
	}
	if req.RecordedAt != nil {
		intake.RecordedAt = *req.RecordedAt
	}
	if err := s.repo.Update(ctx, intake); err != nil {
		s.logger.Error("failed to update water intake", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionUpdate,
		ObjectType: objectType,
		ObjectID:   intake.ID,
		Payload:    intake.snapshot(),
	})
	return intake, nil
}

func (s *service) Delete(ctx context.Context, id, userID uint) error {
	intake, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("failed to delete water intake", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionDelete,
		ObjectType: objectType,
		ObjectID:   intake.ID,
		Payload:    intake.snapshot(),
	})
	return nil
}
