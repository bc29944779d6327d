package audit

import (
	"context"

	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry describes one privileged mutation to record.
type Entry struct {
	Action        enums.AuditAction
	Entity        enums.AuditEntity
	EntityID      uuid.UUID
	PerformedBy   uuid.UUID
	PerformedRole enums.Role
}

// Repository appends audit rows. The log is append-only; there are no update
// or delete operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record appends one audit row.
func (r *Repository) Record(ctx context.Context, entry Entry) error {
	row := &models.AuditLog{
		ID:              uuid.New(),
		ActionType:      entry.Action,
		EntityType:      entry.Entity,
		EntityID:        entry.EntityID,
		PerformedBy:     entry.PerformedBy,
		PerformedByRole: entry.PerformedRole,
	}
	return r.db.WithContext(ctx).Create(row).Error
}
