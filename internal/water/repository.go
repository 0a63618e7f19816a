package water

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrWaterNotFound        = errors.New("water intake not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during access to water_intakes table")
)

type Repository interface {
	Create(ctx context.Context, intake *WaterIntake) error
	ReadAllByUserID(ctx context.Context, userID uint) ([]WaterIntake, error)
	// ReadByIDForUser scopes the lookup to the owner; a record owned by
	// someone else looks exactly like a missing one.
	ReadByIDForUser(ctx context.Context, id, userID uint) (*WaterIntake, error)
	Update(ctx context.Context, intake *WaterIntake) error
	Delete(ctx context.Context, id, userID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, intake *WaterIntake) error {
	if err := r.db.WithContext(ctx).Create(intake).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) ReadAllByUserID(ctx context.Context, userID uint) ([]WaterIntake, error) {
	var intakes []WaterIntake
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&intakes).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return intakes, nil
}

func (r *repository) ReadByIDForUser(ctx context.Context, id, userID uint) (*WaterIntake, error) {
	var intake WaterIntake
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&intake).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWaterNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &intake, nil
}

func (r *repository) Update(ctx context.Context, intake *WaterIntake) error {
	if err := r.db.WithContext(ctx).Save(intake).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Delete(&WaterIntake{})
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrWaterNotFound
	}
	return nil
}
