package admins

import (
	"context"

	"github.com/campuskit/campus-backend/internal/users"
	"github.com/campuskit/campus-backend/pkg/config"
	"github.com/campuskit/campus-backend/pkg/db"
	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/campuskit/campus-backend/pkg/logger"
	"github.com/campuskit/campus-backend/pkg/security"
	"gorm.io/gorm"
)

type bootstrapUserRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	ExistsWithRole(ctx context.Context, role string) (bool, error)
}

// EnsureSuperAdmin seeds the first super admin from config on a fresh
// database. It is a no-op when bootstrap credentials are absent or a super
// admin already exists, so it is safe to run on every startup.
func EnsureSuperAdmin(ctx context.Context, client *db.Client, bootstrapCfg config.BootstrapConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) error {
	return ensureSuperAdmin(ctx, client, func(tx *gorm.DB) bootstrapUserRepository {
		return users.NewRepository(tx)
	}, bootstrapCfg, passwordCfg, logg)
}

func ensureSuperAdmin(ctx context.Context, tx txRunner, repos func(tx *gorm.DB) bootstrapUserRepository, bootstrapCfg config.BootstrapConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) error {
	if !bootstrapCfg.Enabled() {
		return nil
	}

	passwordHash, err := security.HashPassword(bootstrapCfg.SuperAdminPassword, passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash bootstrap password")
	}

	return tx.WithTx(ctx, func(gtx *gorm.DB) error {
		repo := repos(gtx)

		exists, err := repo.ExistsWithRole(ctx, enums.RoleSuperAdmin.String())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check super admin presence")
		}
		if exists {
			return nil
		}

		created, err := repo.Create(ctx, users.CreateUserDTO{
			FullName:     bootstrapCfg.SuperAdminName,
			Email:        bootstrapCfg.SuperAdminEmail,
			Phone:        bootstrapCfg.SuperAdminPhone,
			PasswordHash: passwordHash,
			Role:         enums.RoleSuperAdmin,
			IsApproved:   true,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create bootstrap super admin")
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "user_id", created.ID.String()), "bootstrap super admin created")
		}
		return nil
	})
}
