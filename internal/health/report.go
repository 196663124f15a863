// Package health defines the report shape shared by the service dependencies
// that can be checked from the health endpoint.
package health

import "context"

// Status values reported by dependencies.
const (
	StatusHealthy      = "healthy"
	StatusDisconnected = "disconnected"
	StatusUnhealthy    = "unhealthy"
)

// Report is the result of a single dependency check.
type Report struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

// Healthy reports whether the dependency is usable.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Checker is implemented by dependencies that can report their health.
type Checker interface {
	HealthCheck(ctx context.Context) Report
}
