package auth

import (
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
)

// Actor identifies the authenticated user performing a request. It is
// derived from the access token claims and recorded alongside audited
// operations.
type Actor struct {
	ID   uuid.UUID
	Role enums.Role
}
