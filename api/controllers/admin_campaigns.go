package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/api/middleware"
	"github.com/doevida/doevida-backend/api/responses"
	"github.com/doevida/doevida-backend/api/validators"
	"github.com/doevida/doevida-backend/internal/campaigns"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/logger"
)

// AdminCampaignCreate creates a campaign on behalf of an admin.
func AdminCampaignCreate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		var req campaigns.CreateCampaignDTO
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if raw := middleware.UserIDFromContext(ctx); raw != "" {
			if adminID, err := uuid.Parse(raw); err == nil {
				req.CreatedBy = &adminID
			}
		}

		campaign, err := svc.Create(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, campaign)
	}
}

// AdminCampaignUpdate patches campaign fields.
func AdminCampaignUpdate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "campaignID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req campaigns.UpdateCampaignDTO
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Update(ctx, id, req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// AdminCampaignDelete removes a campaign and its participations.
func AdminCampaignDelete(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "campaignID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
