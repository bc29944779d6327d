package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuskit/campus-backend/internal/users"
	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	"github.com/campuskit/campus-backend/pkg/config"
	"github.com/campuskit/campus-backend/pkg/db"
	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/campuskit/campus-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "invalid email or password"
	accountDisabledMessage    = "account disabled"
	pendingApprovalMessage    = "account pending admin approval"
	duplicateEmailMessage     = "email already exists"

	studentCreatedMessage = "Account created successfully"
	teacherCreatedMessage = "Account created. Awaiting admin approval."

	emailUniqueConstraint = "idx_users_email"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userRepoFactory func(tx *gorm.DB) userRepository

type service struct {
	users       userRepository
	tx          txRunner
	userRepos   userRepoFactory
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
// DB is enough for production wiring; the repo and tx fields exist so tests
// can substitute stubs.
type ServiceParams struct {
	DB              *db.Client
	UserRepo        userRepository
	TxRunner        txRunner
	UserRepoFactory userRepoFactory
	PasswordConfig  config.PasswordConfig
	JWTConfig       config.JWTConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB != nil {
		if params.UserRepo == nil {
			params.UserRepo = users.NewRepository(params.DB.DB())
		}
		if params.TxRunner == nil {
			params.TxRunner = params.DB
		}
		if params.UserRepoFactory == nil {
			params.UserRepoFactory = func(tx *gorm.DB) userRepository {
				return users.NewRepository(tx)
			}
		}
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.UserRepoFactory == nil {
		return nil, fmt.Errorf("user repository factory is required")
	}
	return &service{
		users:       params.UserRepo,
		tx:          params.TxRunner,
		userRepos:   params.UserRepoFactory,
		passwordCfg: params.PasswordConfig,
		jwtCfg:      params.JWTConfig,
	}, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		req.Password == "" ||
		req.Role == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "all fields are required")
	}
	if !req.Role.IsSignupRole() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role selected")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepos(tx)

		if _, err := repo.FindByEmail(ctx, req.Email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, duplicateEmailMessage)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			FullName:     req.FullName,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: passwordHash,
			Role:         req.Role,
			IsApproved:   req.Role == enums.RoleStudent,
		})
		if err != nil {
			// The unique index on users.email is the authoritative guard.
			// A concurrent signup can slip past the pre-check and still
			// land here.
			if db.IsUniqueViolation(err, emailUniqueConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, duplicateEmailMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := studentCreatedMessage
	if created.Role == enums.RoleTeacher {
		message = teacherCreatedMessage
	}
	return &SignupResponse{
		Message: message,
		User:    users.FromModel(created),
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	// Disabled accounts are rejected before the password is checked so a
	// deactivated admin learns the account state, not whether the
	// credentials were right.
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, accountDisabledMessage)
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if user.Role == enums.RoleTeacher && !user.IsApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, pendingApprovalMessage)
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		Token: token,
		User:  users.FromModel(user),
	}, nil
}
