package admins

import (
	"context"

	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var adminRoles = []enums.Role{enums.RoleAdmin, enums.RoleSuperAdmin}

// Repository exposes admin account and tombstone persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admins repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active admin and super admin accounts, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.User, error) {
	var admins []models.User
	err := r.db.WithContext(ctx).
		Where("role IN ? AND is_active = ?", adminRoles, true).
		Order("created_at DESC").
		Find(&admins).Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

// FindByID loads an admin-role user regardless of active state.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var admin models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role IN ?", id, adminRoles).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// SetActive flips the account's active flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// InsertTombstone snapshots a deleted admin into deleted_users.
func (r *Repository) InsertTombstone(ctx context.Context, admin *models.User, deletedBy uuid.UUID) (*models.DeletedUser, error) {
	row := &models.DeletedUser{
		ID:             uuid.New(),
		OriginalUserID: admin.ID,
		FullName:       admin.FullName,
		Email:          admin.Email,
		Phone:          admin.Phone,
		Role:           admin.Role,
		DeletedBy:      deletedBy,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// ListTombstones returns deleted admin snapshots, newest deletion first.
func (r *Repository) ListTombstones(ctx context.Context) ([]models.DeletedUser, error) {
	var rows []models.DeletedUser
	err := r.db.WithContext(ctx).
		Order("deleted_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindTombstoneByID loads one deleted admin snapshot.
func (r *Repository) FindTombstoneByID(ctx context.Context, id uuid.UUID) (*models.DeletedUser, error) {
	var row models.DeletedUser
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteTombstone removes the snapshot once the account is restored.
func (r *Repository) DeleteTombstone(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.DeletedUser{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
