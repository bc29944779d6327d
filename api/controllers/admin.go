package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campuskit/campus-backend/api/middleware"
	"github.com/campuskit/campus-backend/api/responses"
	"github.com/campuskit/campus-backend/api/validators"
	"github.com/campuskit/campus-backend/internal/admins"
	"github.com/campuskit/campus-backend/internal/teachers"
	pkgAuth "github.com/campuskit/campus-backend/pkg/auth"
	pkgerrors "github.com/campuskit/campus-backend/pkg/errors"
	"github.com/campuskit/campus-backend/pkg/logger"
	"github.com/campuskit/campus-backend/pkg/types"
)

func requestActor(r *http.Request) (pkgAuth.Actor, *pkgerrors.Error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return pkgAuth.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return actor, nil
}

func pathID(r *http.Request, name string) (uuid.UUID, *pkgerrors.Error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	return id, nil
}

// AdminCreate provisions a new admin or super admin account.
func AdminCreate(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, actorErr := requestActor(r)
		if actorErr != nil {
			responses.WriteError(r.Context(), logg, w, actorErr)
			return
		}

		var body admins.CreateAdminRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateAdmin(r.Context(), body, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminList returns the active admin and super admin accounts.
func AdminList(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ListAdmins(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminDelete soft-deletes an admin account.
func AdminDelete(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, actorErr := requestActor(r)
		if actorErr != nil {
			responses.WriteError(r.Context(), logg, w, actorErr)
			return
		}
		id, idErr := pathID(r, "id")
		if idErr != nil {
			responses.WriteError(r.Context(), logg, w, idErr)
			return
		}

		msg, err := svc.DeleteAdmin(r.Context(), id, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: msg})
	}
}

// AdminListDeleted returns the deleted admin snapshots.
func AdminListDeleted(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ListDeleted(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminRestore reactivates a soft-deleted admin from its snapshot.
func AdminRestore(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, actorErr := requestActor(r)
		if actorErr != nil {
			responses.WriteError(r.Context(), logg, w, actorErr)
			return
		}
		id, idErr := pathID(r, "id")
		if idErr != nil {
			responses.WriteError(r.Context(), logg, w, idErr)
			return
		}

		msg, err := svc.RestoreAdmin(r.Context(), id, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: msg})
	}
}

// TeachersPending lists teacher accounts awaiting approval.
func TeachersPending(svc teachers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ListPending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TeacherApprove flips a pending teacher to approved.
func TeacherApprove(svc teachers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, actorErr := requestActor(r)
		if actorErr != nil {
			responses.WriteError(r.Context(), logg, w, actorErr)
			return
		}
		id, idErr := pathID(r, "id")
		if idErr != nil {
			responses.WriteError(r.Context(), logg, w, idErr)
			return
		}

		msg, err := svc.Approve(r.Context(), id, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: msg})
	}
}

// TeacherReject removes a teacher signup outright.
func TeacherReject(svc teachers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, actorErr := requestActor(r)
		if actorErr != nil {
			responses.WriteError(r.Context(), logg, w, actorErr)
			return
		}
		id, idErr := pathID(r, "id")
		if idErr != nil {
			responses.WriteError(r.Context(), logg, w, idErr)
			return
		}

		msg, err := svc.Reject(r.Context(), id, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageResponse{Message: msg})
	}
}
