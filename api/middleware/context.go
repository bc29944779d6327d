package middleware

import (
	"context"

	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	"github.com/campuskit/campus-backend/pkg/enums"
	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// ActorFromContext rebuilds the acting user from the request context. The
// second return is false when the context was not seeded by the auth
// middleware.
func ActorFromContext(ctx context.Context) (pkgAuth.Actor, bool) {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return pkgAuth.Actor{}, false
	}
	role, err := enums.ParseRole(RoleFromContext(ctx))
	if err != nil {
		return pkgAuth.Actor{}, false
	}
	return pkgAuth.Actor{ID: id, Role: role}, true
}
