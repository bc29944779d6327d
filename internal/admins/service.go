package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campuskit/campus-backend/internal/audit"
	"github.com/campuskit/campus-backend/internal/users"
	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	"github.com/campuskit/campus-backend/pkg/config"
	"github.com/campuskit/campus-backend/pkg/db"
	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/campuskit/campus-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	adminNotFoundMessage        = "admin not found"
	deletedAdminNotFoundMessage = "deleted admin not found"
	selfDeleteMessage           = "cannot delete your own account"
	superAdminProtectedMessage  = "cannot delete a super admin"
	duplicateEmailMessage       = "email already exists"

	adminDeletedMessage  = "Admin deleted successfully"
	adminRestoredMessage = "Admin restored successfully"

	emailUniqueConstraint = "idx_users_email"
)

// Service drives admin account provisioning, soft deletion, and restore.
type Service interface {
	CreateAdmin(ctx context.Context, req CreateAdminRequest, actor pkgAuth.Actor) (*CreateAdminResponse, error)
	ListAdmins(ctx context.Context) ([]users.UserDTO, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error)
	ListDeleted(ctx context.Context) ([]DeletedAdminDTO, error)
	RestoreAdmin(ctx context.Context, tombstoneID uuid.UUID, actor pkgAuth.Actor) (string, error)
}

type adminRepository interface {
	ListActive(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (int64, error)
	InsertTombstone(ctx context.Context, admin *models.User, deletedBy uuid.UUID) (*models.DeletedUser, error)
	ListTombstones(ctx context.Context) ([]models.DeletedUser, error)
	FindTombstoneByID(ctx context.Context, id uuid.UUID) (*models.DeletedUser, error)
	DeleteTombstone(ctx context.Context, id uuid.UUID) (int64, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	admins      adminRepository
	tx          txRunner
	adminRepos  func(tx *gorm.DB) adminRepository
	userRepos   func(tx *gorm.DB) userRepository
	auditRepos  func(tx *gorm.DB) auditRecorder
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies for the admin management service.
// DB is enough for production wiring; the repo and tx fields exist so tests
// can substitute stubs.
type ServiceParams struct {
	DB               *db.Client
	AdminRepo        adminRepository
	TxRunner         txRunner
	AdminRepoFactory func(tx *gorm.DB) adminRepository
	UserRepoFactory  func(tx *gorm.DB) userRepository
	AuditRepoFactory func(tx *gorm.DB) auditRecorder
	PasswordConfig   config.PasswordConfig
}

// NewService constructs an admin management service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB != nil {
		if params.AdminRepo == nil {
			params.AdminRepo = NewRepository(params.DB.DB())
		}
		if params.TxRunner == nil {
			params.TxRunner = params.DB
		}
		if params.AdminRepoFactory == nil {
			params.AdminRepoFactory = func(tx *gorm.DB) adminRepository {
				return NewRepository(tx)
			}
		}
		if params.UserRepoFactory == nil {
			params.UserRepoFactory = func(tx *gorm.DB) userRepository {
				return users.NewRepository(tx)
			}
		}
		if params.AuditRepoFactory == nil {
			params.AuditRepoFactory = func(tx *gorm.DB) auditRecorder {
				return audit.NewRepository(tx)
			}
		}
	}
	if params.AdminRepo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.AdminRepoFactory == nil {
		return nil, fmt.Errorf("admin repository factory is required")
	}
	if params.UserRepoFactory == nil {
		return nil, fmt.Errorf("user repository factory is required")
	}
	if params.AuditRepoFactory == nil {
		return nil, fmt.Errorf("audit repository factory is required")
	}
	return &service{
		admins:      params.AdminRepo,
		tx:          params.TxRunner,
		adminRepos:  params.AdminRepoFactory,
		userRepos:   params.UserRepoFactory,
		auditRepos:  params.AuditRepoFactory,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) CreateAdmin(ctx context.Context, req CreateAdminRequest, actor pkgAuth.Actor) (*CreateAdminResponse, error) {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "all fields are required")
	}

	// Only an explicit SUPER_ADMIN request escalates; everything else,
	// including garbage, is stored as ADMIN.
	role := enums.RoleAdmin
	if req.Role == enums.RoleSuperAdmin {
		role = enums.RoleSuperAdmin
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepos(tx)

		if _, err := userRepo.FindByEmail(ctx, req.Email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, duplicateEmailMessage)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			FullName:     req.FullName,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: passwordHash,
			Role:         role,
			IsApproved:   true,
			CreatedBy:    &actor.ID,
		})
		if err != nil {
			if db.IsUniqueViolation(err, emailUniqueConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, duplicateEmailMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
		}
		created = user

		return s.recordAudit(ctx, tx, enums.AuditActionCreateAdmin, user.ID, actor)
	})
	if err != nil {
		return nil, err
	}

	return &CreateAdminResponse{
		Message: fmt.Sprintf("%s created successfully", strings.ReplaceAll(role.String(), "_", " ")),
		User:    users.FromModel(created),
	}, nil
}

func (s *service) ListAdmins(ctx context.Context) ([]users.UserDTO, error) {
	rows, err := s.admins.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list admins")
	}
	admins := make([]users.UserDTO, 0, len(rows))
	for i := range rows {
		admins = append(admins, *users.FromModel(&rows[i]))
	}
	return admins, nil
}

func (s *service) DeleteAdmin(ctx context.Context, id uuid.UUID, actor pkgAuth.Actor) (string, error) {
	if id == actor.ID {
		return "", pkgerrors.New(pkgerrors.CodeValidation, selfDeleteMessage)
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		adminRepo := s.adminRepos(tx)

		admin, err := adminRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, adminNotFoundMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
		}
		if admin.Role == enums.RoleSuperAdmin {
			return pkgerrors.New(pkgerrors.CodeForbidden, superAdminProtectedMessage)
		}

		if _, err := adminRepo.InsertTombstone(ctx, admin, actor.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert tombstone")
		}
		if _, err := adminRepo.SetActive(ctx, admin.ID, false); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate admin")
		}

		return s.recordAudit(ctx, tx, enums.AuditActionDeleteAdmin, admin.ID, actor)
	})
	if err != nil {
		return "", err
	}
	return adminDeletedMessage, nil
}

func (s *service) ListDeleted(ctx context.Context) ([]DeletedAdminDTO, error) {
	rows, err := s.admins.ListTombstones(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list deleted admins")
	}
	deleted := make([]DeletedAdminDTO, 0, len(rows))
	for _, row := range rows {
		deleted = append(deleted, deletedFromModel(row))
	}
	return deleted, nil
}

func (s *service) RestoreAdmin(ctx context.Context, tombstoneID uuid.UUID, actor pkgAuth.Actor) (string, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		adminRepo := s.adminRepos(tx)

		tombstone, err := adminRepo.FindTombstoneByID(ctx, tombstoneID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, deletedAdminNotFoundMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup tombstone")
		}

		affected, err := adminRepo.SetActive(ctx, tombstone.OriginalUserID, true)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reactivate admin")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, adminNotFoundMessage)
		}

		if _, err := adminRepo.DeleteTombstone(ctx, tombstone.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete tombstone")
		}

		// The audit trail keeps both rows: the earlier DELETE_ADMIN entry
		// stays, and the restore is appended after it.
		return s.recordAudit(ctx, tx, enums.AuditActionRestoreAdmin, tombstone.OriginalUserID, actor)
	})
	if err != nil {
		return "", err
	}
	return adminRestoredMessage, nil
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
