package teachers

import (
	"time"

	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/google/uuid"
)

// PendingTeacherDTO is the trimmed listing shown to admins reviewing
// signups.
type PendingTeacherDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func pendingFromModel(u models.User) PendingTeacherDTO {
	return PendingTeacherDTO{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
