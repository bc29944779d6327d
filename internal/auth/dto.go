package auth

import (
	"github.com/campuskit/campus-backend/internal/users"
	"github.com/campuskit/campus-backend/pkg/enums"
)

// SignupRequest captures the payload for self-service account creation.
// Only presence is enforced here; email shape and password strength are
// not constrained, matching the service's own presence check.
type SignupRequest struct {
	FullName string     `json:"full_name" validate:"required"`
	Email    string     `json:"email" validate:"required"`
	Phone    string     `json:"phone" validate:"required"`
	Password string     `json:"password" validate:"required"`
	Role     enums.Role `json:"role" validate:"required"`
}

// SignupResponse confirms the created account and whether it still awaits
// approval.
type SignupResponse struct {
	Message string         `json:"message"`
	User    *users.UserDTO `json:"user"`
}

// LoginRequest captures the credentials sent to the login endpoint. The
// email field is deliberately not format-checked: a malformed identifier
// must fall through to the lookup and fail with the same credentials
// message as an unknown address.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the access token and profile produced by a
// successful login.
type LoginResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
