package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

// readyPingTimeout bounds the database probe so a wedged store fails the
// probe instead of hanging it.
const readyPingTimeout = 2 * time.Second

// SystemHandler serves the unauthenticated probe and key discovery routes.
type SystemHandler struct {
	Store   store.Store
	Keys    *jwtx.KeySet
	Version string
	Started time.Time
}

func (h *SystemHandler) health(status string, checks *authsdk.HealthChecks) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.Started).Round(time.Second).String(),
		Version: h.Version,
		Checks:  checks,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving requests.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse
//	@Router			/livez [get]
func (h *SystemHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.health("ok", nil))
}

// HandleReadyz godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the credential store and the signing keys. Returns 503 when either is unavailable.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse
//	@Failure		503	{object}	authsdk.HealthResponse
//	@Router			/readyz [get]
func (h *SystemHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := &authsdk.HealthChecks{Database: "ok", Signer: "ok"}
	status, code := "ok", http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		slogx.FromContext(r.Context()).Warn("readiness: database ping failed", slog.Any("error", err))
		checks.Database = "unavailable"
		status, code = "degraded", http.StatusServiceUnavailable
	}
	if !h.Keys.IsReady() {
		checks.Signer = "no keys loaded"
		status, code = "degraded", http.StatusServiceUnavailable
	}

	httpx.WriteJSON(w, code, h.health(status, checks))
}

// HandleJWKS godoc
//
//	@Summary		JSON Web Key Set
//	@Description	Public keys for verifying access tokens offline.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	authsdk.JWKSResponse
//	@Router			/.well-known/jwks.json [get]
func (h *SystemHandler) HandleJWKS(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, authsdk.JWKSResponse(h.Keys.PublicJWKS()))
}
