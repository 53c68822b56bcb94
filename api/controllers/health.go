package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/maresdigital/brandhub-backend/api/responses"
	"github.com/maresdigital/brandhub-backend/pkg/config"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
)

// Pinger is the readiness surface every wired dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BrandHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired dependency. A nil pinger is treated as an
// optional dependency that was not configured.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BrandHub-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				status[name] = "not configured"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				if logg != nil {
					logCtx := logg.WithField(ctx, "dependency", name)
					logg.Error(logCtx, "health.ready.failed", err)
				}
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
						WithDetails(map[string]any{"dependency": name}))
				return
			}
			status[name] = "ok"
		}

		status["status"] = "ready"
		responses.WriteSuccess(w, status)
	}
}
