package controllers

import (
	"net/http"

	"github.com/doevida/doevida-backend/api/responses"
	"github.com/doevida/doevida-backend/api/validators"
	"github.com/doevida/doevida-backend/internal/campaigns"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/logger"
)

// CampaignList returns all campaigns plus aggregate stats. Public.
func CampaignList(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		resp, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// CampaignGet returns a single campaign by id. Public.
func CampaignGet(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
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

		campaign, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, campaign)
	}
}
