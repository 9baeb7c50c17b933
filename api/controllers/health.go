package controllers

import (
	"net/http"

	"github.com/mercatus-labs/mercatus-backend/api/responses"
	"github.com/mercatus-labs/mercatus-backend/pkg/config"
	"github.com/mercatus-labs/mercatus-backend/pkg/db"
	pkgredis "github.com/mercatus-labs/mercatus-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercatus-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, dbClient *db.Client, redisClient *pkgredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercatus-Env", cfg.App.Env)

		status := map[string]string{"status": "ready", "db": "ok", "redis": "ok"}
		healthy := true

		if dbClient != nil {
			if err := dbClient.Ping(r.Context()); err != nil {
				status["db"] = "unreachable"
				healthy = false
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				status["redis"] = "unreachable"
				healthy = false
			}
		}

		if !healthy {
			status["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
