package models

import (
	"time"

	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
)

// DeletedUser is the tombstone written when an admin account is soft-deleted.
// The original users row persists with is_active=false; the tombstone's
// existence is the sole marker of "pending restore".
type DeletedUser struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OriginalUserID uuid.UUID  `gorm:"type:uuid;column:original_user_id;not null"`
	FullName       string     `gorm:"column:full_name;not null"`
	Email          string     `gorm:"type:text;not null"`
	Phone          string     `gorm:"column:phone;not null"`
	Role           enums.Role `gorm:"type:text;not null"`
	DeletedBy      uuid.UUID  `gorm:"type:uuid;column:deleted_by;not null"`
	DeletedAt      time.Time  `gorm:"column:deleted_at;autoCreateTime"`
}
