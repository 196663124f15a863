package api

import (
	"context"
	"net/http"
	"time"

	"github.com/maigie/maigie-api/internal/api/shared"
	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/health"
)

// Names of the dependency checks in the health response.
const (
	DatabaseCheck = "database"
	CacheCheck    = "cache"
)

// healthCheckTimeout bounds each dependency check.
const healthCheckTimeout = 3 * time.Second

// HealthHandler reports the health of the service and its dependencies.
type HealthHandler struct {
	settings *config.Settings
	checks   map[string]health.Checker
}

// NewHealthHandler creates a HealthHandler probing the database and cache.
func NewHealthHandler(settings *config.Settings, database, cache health.Checker) *HealthHandler {
	return &HealthHandler{
		settings: settings,
		checks: map[string]health.Checker{
			DatabaseCheck: database,
			CacheCheck:    cache,
		},
	}
}

// Health handles GET /health. It answers 503 when any dependency is not healthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      health.StatusHealthy,
		App:         h.settings.AppName,
		Version:     h.settings.AppVersion,
		Environment: h.settings.Environment,
		Checks:      make(map[string]health.Report, len(h.checks)),
	}

	for name, checker := range h.checks {
		report := runCheck(r.Context(), checker)
		resp.Checks[name] = report
		if !report.Healthy() {
			resp.Status = health.StatusUnhealthy
		}
	}

	status := http.StatusOK
	if resp.Status != health.StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	shared.RespondWithJSON(w, r, status, resp)
}

func runCheck(ctx context.Context, checker health.Checker) health.Report {
	if checker == nil {
		return health.Report{Status: health.StatusDisconnected}
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return checker.HealthCheck(ctx)
}
