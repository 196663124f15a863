// Package api holds the HTTP handlers of the Maigie API: the health check,
// the API info endpoint, the current-user endpoint and the fallback handlers
// for unknown routes and methods. Handlers report failures as errors through
// shared.RespondWithError so every error leaves in the same envelope.
package api
