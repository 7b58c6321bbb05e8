package controllers

import (
	"net/http"

	"github.com/teohome/storefront-backend/api/responses"
	"github.com/teohome/storefront-backend/internal/catalog"
	"github.com/teohome/storefront-backend/pkg/config"
	pkgerrors "github.com/teohome/storefront-backend/pkg/errors"
	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Teohome-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The cart store must answer; the catalog is
// always ready because fixture mode needs nothing external.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisPinger redis.Pinger, catalogSvc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Teohome-Env", cfg.App.Env)

		if redisPinger != nil {
			if err := redisPinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unreachable"))
				return
			}
		}

		status := map[string]string{"status": "ready"}
		if catalogSvc != nil {
			status["catalog_source"] = string(catalogSvc.Source())
		}
		responses.WriteSuccess(w, status)
	}
}
