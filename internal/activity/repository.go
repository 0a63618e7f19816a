package activity

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrActivityNotFound     = errors.New("activity not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during access to activities table")
)

type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	ReadAllByUserID(ctx context.Context, userID uint) ([]Activity, error)
	ReadByIDForUser(ctx context.Context, id, userID uint) (*Activity, error)
	Update(ctx context.Context, activity *Activity) error
	Delete(ctx context.Context, id, userID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, activity *Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) ReadAllByUserID(ctx context.Context, userID uint) ([]Activity, error) {
	var activities []Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&activities).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return activities, nil
}

func (r *repository) ReadByIDForUser(ctx context.Context, id, userID uint) (*Activity, error) {
	var activity Activity
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&activity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &activity, nil
}

func (r *repository) Update(ctx context.Context, activity *Activity) error {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Delete(&Activity{})
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}
