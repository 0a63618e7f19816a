package audit

import (
	"time"

	"gorm.io/datatypes"
)

// Action is the kind of mutation an audit row records.
type Action string

const (
	ActionUser   Action = "USER"
	ActionAdd    Action = "ADD"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// AuditLog is one entry in the mutation trail. Payload accepts heterogeneous
// resource snapshots but the envelope around it stays typed.
type AuditLog struct {
	ID         uint              `json:"id" gorm:"primarykey"`
	UserID     uint              `json:"user_id" gorm:"index"`
	Action     Action            `json:"action" gorm:"type:text;not null"`
	ObjectType string            `json:"object_type"`
	ObjectID   uint              `json:"object_id"`
	Payload    datatypes.JSONMap `json:"payload" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Entry is what mutating handlers hand to the recorder.
type Entry struct {
	Action     Action
	ObjectType string
	ObjectID   uint
	Payload    map[string]interface{}
}
