package teachers

import (
	"context"
	"fmt"

	"github.com/campuskit/campus-backend/internal/audit"
	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	"github.com/campuskit/campus-backend/pkg/db"
	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	teacherNotFoundMessage = "teacher not found"

	teacherApprovedMessage = "Teacher approved successfully"
	teacherRejectedMessage = "Teacher rejected and removed"
)

// Service drives the admin review queue for teacher signups.
type Service interface {
	ListPending(ctx context.Context) ([]PendingTeacherDTO, error)
	Approve(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error)
	Reject(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error)
}

type teacherRepository interface {
	ListPending(ctx context.Context) ([]models.User, error)
	Approve(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	teachers     teacherRepository
	tx           txRunner
	teacherRepos func(tx *gorm.DB) teacherRepository
	auditRepos   func(tx *gorm.DB) auditRecorder
}

// ServiceParams bundles the dependencies for the teacher review service.
// DB is enough for production wiring; the repo and tx fields exist so tests
// can substitute stubs.
type ServiceParams struct {
	DB                 *db.Client
	TeacherRepo        teacherRepository
	TxRunner           txRunner
	TeacherRepoFactory func(tx *gorm.DB) teacherRepository
	AuditRepoFactory   func(tx *gorm.DB) auditRecorder
}

// NewService constructs a teacher review service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB != nil {
		if params.TeacherRepo == nil {
			params.TeacherRepo = NewRepository(params.DB.DB())
		}
		if params.TxRunner == nil {
			params.TxRunner = params.DB
		}
		if params.TeacherRepoFactory == nil {
			params.TeacherRepoFactory = func(tx *gorm.DB) teacherRepository {
				return NewRepository(tx)
			}
		}
		if params.AuditRepoFactory == nil {
			params.AuditRepoFactory = func(tx *gorm.DB) auditRecorder {
				return audit.NewRepository(tx)
			}
		}
	}
	if params.TeacherRepo == nil {
		return nil, fmt.Errorf("teacher repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.TeacherRepoFactory == nil {
		return nil, fmt.Errorf("teacher repository factory is required")
	}
	if params.AuditRepoFactory == nil {
		return nil, fmt.Errorf("audit repository factory is required")
	}
	return &service{
		teachers:     params.TeacherRepo,
		tx:           params.TxRunner,
		teacherRepos: params.TeacherRepoFactory,
		auditRepos:   params.AuditRepoFactory,
	}, nil
}

func (s *service) ListPending(ctx context.Context) ([]PendingTeacherDTO, error) {
	rows, err := s.teachers.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pending teachers")
	}
	pending := make([]PendingTeacherDTO, 0, len(rows))
	for _, row := range rows {
		pending = append(pending, pendingFromModel(row))
	}
	return pending, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.teacherRepos(tx).Approve(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve teacher")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, teacherNotFoundMessage)
		}
		return s.recordAudit(ctx, tx, enums.AuditActionApproveTeacher, id, actor)
	})
	if err != nil {
		return "", err
	}
	return teacherApprovedMessage, nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.teacherRepos(tx).Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reject teacher")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, teacherNotFoundMessage)
		}
		return s.recordAudit(ctx, tx, enums.AuditActionRejectTeacher, id, actor)
	})
	if err != nil {
		return "", err
	}
	return teacherRejectedMessage, nil
}

func (s *service) recordAudit(ctx context.Context, tx *gorm.DB, action enums.AuditAction, entityID uuid.UUID, actor pkgAuth.Actor) error {
	err := s.auditRepos(tx).Record(ctx, audit.Entry{
		Action:        action,
		Entity:        enums.AuditEntityUser,
		EntityID:      entityID,
		PerformedBy:   actor.ID,
		PerformedRole: actor.Role,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record audit log")
	}
	return nil
}
