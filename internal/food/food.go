package food

import (
	"time"

	"gorm.io/datatypes"
)

// FoodItem is a reusable catalog entry, owned by the user who created it.
type FoodItem struct {
	ID                 uint              `json:"id" gorm:"primarykey"`
	CreatedBy          uint              `json:"created_by" gorm:"index;not null"`
	Name               string            `json:"name" gorm:"not null"`
	Brand              string            `json:"brand"`
	ServingSize        float64           `json:"serving_size"`
	ServingUnit        string            `json:"serving_unit" gorm:"default:'g'"`
	CaloriesPerServing float64           `json:"calories_per_serving"`
	ProteinG           float64           `json:"protein_g"`
	CarbsG             float64           `json:"carbs_g"`
	FatG               float64           `json:"fat_g"`
	Nutrients          datatypes.JSONMap `json:"nutrients" gorm:"type:jsonb"`
	CreatedAt          time.Time         `json:"created_at"`
}

func (f *FoodItem) snapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":                   f.ID,
		"created_by":           f.CreatedBy,
		"name":                 f.Name,
		"brand":                f.Brand,
		"serving_size":         f.ServingSize,
		"serving_unit":         f.ServingUnit,
		"calories_per_serving": f.CaloriesPerServing,
	}
}

type CreateRequest struct {
	Name               string                 `json:"name" binding:"required"`
	Brand              string                 `json:"brand"`
	ServingSize        float64                `json:"serving_size" binding:"omitempty,gt=0"`
	ServingUnit        string                 `json:"serving_unit"`
	CaloriesPerServing float64                `json:"calories_per_serving" binding:"omitempty,gte=0"`
	ProteinG           float64                `json:"protein_g" binding:"omitempty,gte=0"`
	CarbsG             float64                `json:"carbs_g" binding:"omitempty,gte=0"`
	FatG               float64                `json:"fat_g" binding:"omitempty,gte=0"`
	Nutrients          map[string]interface{} `json:"nutrients"`
}

type UpdateRequest struct {
	Name               *string                `json:"name"`
	Brand              *string                `json:"brand"`
	ServingSize        *float64               `json:"serving_size" binding:"omitempty,gt=0"`
	ServingUnit        *string                `json:"serving_unit"`
	CaloriesPerServing *float64               `json:"calories_per_serving" binding:"omitempty,gte=0"`
	ProteinG           *float64               `json:"protein_g" binding:"omitempty,gte=0"`
	CarbsG             *float64               `json:"carbs_g" binding:"omitempty,gte=0"`
	FatG               *float64               `json:"fat_g" binding:"omitempty,gte=0"`
	Nutrients          map[string]interface{} `json:"nutrients"`
}

// mergeNutrients folds updated values into the stored map recursively, so a
// partial update of a nested nutrient group keeps its siblings.
func mergeNutrients(dst, src map[string]interface{}) {
	for key, value := range src {
		if srcNested, ok := value.(map[string]interface{}); ok {
			if dstNested, ok := dst[key].(map[string]interface{}); ok {
				mergeNutrients(dstNested, srcNested)
				continue
			}
		}
		dst[key] = value
	}
}
