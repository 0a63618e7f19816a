package meal

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrMealNotFound         = errors.New("meal not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during access to meals table")
)

type Repository interface {
	Create(ctx context.Context, meal *Meal) error
	ReadAllByUserID(ctx context.Context, userID uint) ([]Meal, error)
	ReadByIDForUser(ctx context.Context, id, userID uint) (*Meal, error)
	Delete(ctx context.Context, id, userID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the meal and its items in one transaction; gorm cascades
// the association through the MealID foreign key.
func (r *repository) Create(ctx context.Context, meal *Meal) error {
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) ReadAllByUserID(ctx context.Context, userID uint) ([]Meal, error) {
	var meals []Meal
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Find(&meals).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return meals, nil
}

func (r *repository) ReadByIDForUser(ctx context.Context, id, userID uint) (*Meal, error) {
	var meal Meal
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&meal).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &meal, nil
}

func (r *repository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("id = ?", id).
			Where("user_id = ?", userID).
			Delete(&Meal{})
		if res.Error != nil {
			return ErrUnresponsiveDatabase
		}
		if res.RowsAffected == 0 {
			return ErrMealNotFound
		}
		if err := tx.Where("meal_id = ?", id).Delete(&MealItem{}).Error; err != nil {
			return ErrUnresponsiveDatabase
		}
		return nil
	})
}
