package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/doevida/doevida-backend/api/responses"
	"github.com/doevida/doevida-backend/pkg/config"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// DependencyCheck names a backing service and its ping.
type DependencyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DoeVida-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each backing dependency and reports the aggregate.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...DependencyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var combined error
		statuses := make(map[string]string, len(checks))
		for _, check := range checks {
			if check.Ping == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				statuses[check.Name] = "down"
				combined = multierr.Append(combined, pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.Name+" unreachable"))
				continue
			}
			statuses[check.Name] = "ok"
		}

		w.Header().Set("X-DoeVida-Env", cfg.App.Env)
		if combined != nil {
			responses.WriteError(ctx, logg, w, combined)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": statuses})
	}
}
