package food

import (
	"context"

	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/audit"
)

const objectType = "food"

type Service interface {
	Add(ctx context.Context, userID uint, req CreateRequest) (*FoodItem, error)
	ReadAll(ctx context.Context, userID uint) ([]FoodItem, error)
	ReadByID(ctx context.Context, id, userID uint) (*FoodItem, error)
	Update(ctx context.Context, id, userID uint, req UpdateRequest) (*FoodItem, error)
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

func (s *service) Add(ctx context.Context, userID uint, req CreateRequest) (*FoodItem, error) {
	servingUnit := req.ServingUnit
	if servingUnit == "" {
		servingUnit = "g"
	}
	item := &FoodItem{
		CreatedBy:          userID,
		Name:               req.Name,
		Brand:              req.Brand,
		ServingSize:        req.ServingSize,
		ServingUnit:        servingUnit,
		CaloriesPerServing: req.CaloriesPerServing,
		ProteinG:           req.ProteinG,
		CarbsG:             req.CarbsG,
		FatG:               req.FatG,
		Nutrients:          req.Nutrients,
	}
	if item.Nutrients == nil {
		item.Nutrients = map[string]interface{}{}
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("failed to create food item", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionAdd,
		ObjectType: objectType,
		ObjectID:   item.ID,
		Payload:    item.snapshot(),
	})
	return item, nil
}

func (s *service) ReadAll(ctx context.Context, userID uint) ([]FoodItem, error) {
	return s.repo.ReadAllByUserID(ctx, userID)
}

func (s *service) ReadByID(ctx context.Context, id, userID uint) (*FoodItem, error) {
	return s.repo.ReadByIDForUser(ctx, id, userID)
}

func (s *service) Update(ctx context.Context, id, userID uint, req UpdateRequest) (*FoodItem, error) {
	item, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.ServingSize != nil {
		item.ServingSize = *req.ServingSize
	}
	if req.ServingUnit != nil {
		item.ServingUnit = *req.ServingUnit
	}
	if req.CaloriesPerServing != nil {
		item.CaloriesPerServing = *req.CaloriesPerServing
	}
	if req.ProteinG != nil {
		item.ProteinG = *req.ProteinG
	}
	if req.CarbsG != nil {
		item.CarbsG = *req.CarbsG
	}
	if req.FatG != nil {
		item.FatG = *req.FatG
	}
	if req.Nutrients != nil {
		if item.Nutrients == nil {
			item.Nutrients = map[string]interface{}{}
		}
		mergeNutrients(item.Nutrients, req.Nutrients)
	}
	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.Error("failed to update food item", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionUpdate,
		ObjectType: objectType,
		ObjectID:   item.ID,
		Payload:    item.snapshot(),
	})
	return item, nil
}

func (s *service) Delete(ctx context.Context, id, userID uint) error {
	item, err := s.repo.ReadByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("failed to delete food item", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.recorder.Record(userID, audit.Entry{
		Action:     audit.ActionDelete,
		ObjectType: objectType,
		ObjectID:   item.ID,
		Payload:    item.snapshot(),
	})
	return nil
}
