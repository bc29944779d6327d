package admins

import (
	"time"

	"github.com/campuskit/campus-backend/internal/users"
	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateAdminRequest captures the payload for provisioning an admin
// account. Role is optional; anything other than an explicit SUPER_ADMIN
// is stored as ADMIN.
type CreateAdminRequest struct {
	FullName string     `json:"full_name" validate:"required"`
	Email    string     `json:"email" validate:"required"`
	Phone    string     `json:"phone" validate:"required"`
	Password string     `json:"password" validate:"required"`
	Role     enums.Role `json:"role,omitempty"`
}

// CreateAdminResponse confirms the provisioned account.
type CreateAdminResponse struct {
	Message string         `json:"message"`
	User    *users.UserDTO `json:"user"`
}

// DeletedAdminDTO mirrors one deleted_users snapshot.
type DeletedAdminDTO struct {
	ID             uuid.UUID  `json:"id"`
	OriginalUserID uuid.UUID  `json:"original_user_id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Role           enums.Role `json:"role"`
	DeletedBy      uuid.UUID  `json:"deleted_by"`
	DeletedAt      time.Time  `json:"deleted_at"`
}

func deletedFromModel(d models.DeletedUser) DeletedAdminDTO {
	return DeletedAdminDTO{
		ID:             d.ID,
		OriginalUserID: d.OriginalUserID,
		FullName:       d.FullName,
		Email:          d.Email,
		Phone:          d.Phone,
		Role:           d.Role,
		DeletedBy:      d.DeletedBy,
		DeletedAt:      d.DeletedAt,
	}
}
