package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/pkg/authsdk"
	"github.com/aussiebroadwan/authsvc/pkg/httpx"
	"github.com/aussiebroadwan/authsvc/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the credential store. Returns 503 when it is unreachable
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{Database: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			// Driver detail goes to the log only.
			slogx.FromContext(r.Context()).Warn("readiness check failed", "error", err)
			checks.Database = "unavailable"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
