package water

import "time"

// WaterIntake is one logged drink, owned by exactly one user.
type WaterIntake struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	AmountML   int       `json:"amount_ml" gorm:"not null"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (w *WaterIntake) snapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":          w.ID,
		"user_id":     w.UserID,
		"amount_ml":   w.AmountML,
		"recorded_at": w.RecordedAt.Format(time.RFC3339),
	}
}

// CreateRequest is the payload for logging a drink.
type CreateRequest struct {
	AmountML   int        `json:"amount_ml" binding:"required,gt=0"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// UpdateRequest carries the patchable subset; nil fields are left untouched.
type UpdateRequest struct {
	AmountML   *int       `json:"amount_ml" binding:"omitempty,gt=0"`
	RecordedAt *time.Time `json:"recorded_at"`
}
