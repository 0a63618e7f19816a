package food

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrFoodNotFound         = errors.New("food item not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during access to food_items table")
)

type Repository interface {
	Create(ctx context.Context, item *FoodItem) error
	ReadAllByUserID(ctx context.Context, userID uint) ([]FoodItem, error)
	ReadByIDForUser(ctx context.Context, id, userID uint) (*FoodItem, error)
	Update(ctx context.Context, item *FoodItem) error
	Delete(ctx context.Context, id, userID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *FoodItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) ReadAllByUserID(ctx context.Context, userID uint) ([]FoodItem, error) {
	var items []FoodItem
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Find(&items).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return items, nil
}

func (r *repository) ReadByIDForUser(ctx context.Context, id, userID uint) (*FoodItem, error) {
	var item FoodItem
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("created_by = ?", userID).
		First(&item).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &item, nil
}

func (r *repository) Update(ctx context.Context, item *FoodItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("created_by = ?", userID).
		Delete(&FoodItem{})
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrFoodNotFound
	}
	return nil
}
