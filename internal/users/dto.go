package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the credential hash.
type UserDTO struct {
	ID         uuid.UUID  `json:"id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       enums.Role `json:"role"`
	IsApproved bool       `json:"is_approved"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         enums.Role
	IsApproved   bool
	CreatedBy    *uuid.UUID
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		FullName:     c.FullName,
		Email:        c.Email,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		IsApproved:   c.IsApproved,
		IsActive:     true,
		CreatedBy:    c.CreatedBy,
	}
}
