// Package middleware holds the HTTP middleware of the API: trace IDs and
// request logging, panic recovery, trusted-host filtering, CORS and the
// API-key and current-user authentication hooks.
//
// Every rejection is written through shared.RespondWithError so clients only
// ever see the standard error envelope.
package middleware
