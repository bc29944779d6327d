package middleware

import (
	"net/http"

	"github.com/campuskit/campus-backend/api/responses"
	"github.com/campuskit/campus-backend/pkg/enums"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/campuskit/campus-backend/pkg/logger"
)

// RequireAnyRole rejects requests whose actor role is outside the allowed
// set. It assumes the Auth middleware already ran.
func RequireAnyRole(logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	allowed := map[string]struct{}{}
	for _, role := range roles {
		allowed[role.String()] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[RoleFromContext(r.Context())]; !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
