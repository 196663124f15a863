package api

import "github.com/maigie/maigie-api/internal/health"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string                   `json:"status"`
	App         string                   `json:"app"`
	Version     string                   `json:"version"`
	Environment string                   `json:"environment"`
	Checks      map[string]health.Report `json:"checks"`
}

// InfoResponse is the body of GET {prefix}/.
type InfoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Environment string `json:"environment"`
}

// CurrentUserResponse is the body of GET {prefix}/me.
type CurrentUserResponse struct {
	UserID string `json:"user_id"`
}
