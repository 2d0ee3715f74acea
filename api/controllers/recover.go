package controllers

import (
	"net/http"

	"github.com/doevida/doevida-backend/api/responses"
	"github.com/doevida/doevida-backend/api/validators"
	"github.com/doevida/doevida-backend/internal/auth"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/logger"
)

// Recover starts a password reset. It always reports success for valid
// input so responses cannot be used to probe for registered emails.
func Recover(svc auth.RecoverService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recovery service unavailable"))
			return
		}

		var req auth.RecoverRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Recover(ctx, req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "if the email exists, a reset link was sent",
		})
	}
}

// ResetPassword completes a password reset with a one-time token.
func ResetPassword(svc auth.RecoverService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recovery service unavailable"))
			return
		}

		var req auth.ResetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Reset(ctx, req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "password updated"})
	}
}
