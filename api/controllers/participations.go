package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/api/middleware"
	"github.com/doevida/doevida-backend/api/responses"
	"github.com/doevida/doevida-backend/api/validators"
	"github.com/doevida/doevida-backend/internal/participations"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/logger"
)

// ParticipationJoin signs the authenticated donor up for a campaign. A
// repeated join surfaces as 409 with the existing participation attached.
func ParticipationJoin(svc participations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "participation service unavailable"))
			return
		}

		userID, err := authenticatedUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		campaignID, err := validators.UUIDParam(r, "campaignID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Join(ctx, userID, campaignID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ParticipationMine lists the authenticated donor's participations.
func ParticipationMine(svc participations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "participation service unavailable"))
			return
		}

		userID, err := authenticatedUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.ListMine(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func authenticatedUserID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
