package models

import (
	"time"

	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
)

// AuditLog is an append-only record of a privileged mutation. Rows are never
// updated or deleted, including on restore.
type AuditLog struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ActionType      enums.AuditAction `gorm:"type:text;column:action_type;not null"`
	EntityType      enums.AuditEntity `gorm:"type:text;column:entity_type;not null"`
	EntityID        uuid.UUID         `gorm:"type:uuid;column:entity_id;not null"`
	PerformedBy     uuid.UUID         `gorm:"type:uuid;column:performed_by;not null"`
	PerformedByRole enums.Role        `gorm:"type:text;column:performed_by_role;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
}
