package meal

import "time"

// Meal is one logged meal. ImageObject holds the object-storage key of the
// uploaded photo, empty when no photo was attached.
type Meal struct {
	ID            uint       `json:"id" gorm:"primarykey"`
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	Name          string     `json:"name" gorm:"default:'meal'"`
	Notes         string     `json:"notes"`
	TotalCalories float64    `json:"total_calories"`
	ImageObject   string     `json:"image_url"`
	EatenAt       time.Time  `json:"eaten_at"`
	Items         []MealItem `json:"items" gorm:"foreignKey:MealID"`
}

// MealItem links a meal to a food-catalog entry.
type MealItem struct {
	ID         uint    `json:"id" gorm:"primarykey"`
	MealID     uint    `json:"meal_id" gorm:"index;not null"`
	FoodItemID uint    `json:"food_item_id" gorm:"index"`
	Quantity   float64 `json:"quantity" gorm:"default:1"`
	Unit       string  `json:"unit" gorm:"default:'serving'"`
	Calories   float64 `json:"calories"`
}

func (m *Meal) snapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":             m.ID,
		"user_id":        m.UserID,
		"name":           m.Name,
		"notes":          m.Notes,
		"total_calories": m.TotalCalories,
		"image_url":      m.ImageObject,
		"eaten_at":       m.EatenAt.Format(time.RFC3339),
	}
}
