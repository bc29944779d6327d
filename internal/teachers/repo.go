package teachers

import (
	"context"

	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes teacher-approval persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a teachers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPending returns teacher accounts awaiting approval, newest first.
func (r *Repository) ListPending(ctx context.Context) ([]models.User, error) {
	var teachers []models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_approved = ?", enums.RoleTeacher, false).
		Order("created_at DESC").
		Find(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

// Approve flips the approval flag for the teacher with the given id. The
// role guard keeps the update from touching non-teacher accounts; the
// returned count is zero when no matching row exists.
func (r *Repository) Approve(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, enums.RoleTeacher).
		Update("is_approved", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes the teacher row entirely. Rejection is the one flow that
// hard-deletes a user.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, enums.RoleTeacher).
		Delete(&models.User{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
