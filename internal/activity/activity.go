package activity

import "time"

// Activity is one logged exercise session.
type Activity struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	Type           string    `json:"type" gorm:"not null"`
	DurationMin    int       `json:"duration_min"`
	CaloriesBurned float64   `json:"calories_burned"`
	PerformedAt    time.Time `json:"performed_at"`
}

func (a *Activity) snapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":              a.ID,
		"user_id":         a.UserID,
		"type":            a.Type,
		"duration_min":    a.DurationMin,
		"calories_burned": a.CaloriesBurned,
		"performed_at":    a.PerformedAt.Format(time.RFC3339),
	}
}

type CreateRequest struct {
	Type           string     `json:"type" binding:"required"`
	DurationMin    int        `json:"duration_min" binding:"omitempty,gt=0"`
	CaloriesBurned float64    `json:"calories_burned" binding:"omitempty,gte=0"`
	PerformedAt    *time.Time `json:"performed_at"`
}

type UpdateRequest struct {
	Type           *string    `json:"type"`
	DurationMin    *int       `json:"duration_min" binding:"omitempty,gt=0"`
	CaloriesBurned *float64   `json:"calories_burned" binding:"omitempty,gte=0"`
	PerformedAt    *time.Time `json:"performed_at"`
}
