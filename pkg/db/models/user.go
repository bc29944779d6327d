package models

import (
	"time"

	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents the canonical identity entity. The unique index on email is
// the authoritative guard against duplicate registrations; service-level
// existence checks are best-effort only.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FullName     string     `gorm:"column:full_name;not null"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	Phone        string     `gorm:"column:phone;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"type:text;not null"`
	IsApproved   bool       `gorm:"column:is_approved;not null;default:true"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid;column:created_by"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
