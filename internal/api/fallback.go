package api

import (
	"net/http"

	"github.com/maigie/maigie-api/internal/api/shared"
	"github.com/maigie/maigie-api/internal/apperr"
)

// MethodNotAllowedMessage is returned for known routes called with the wrong method.
const MethodNotAllowedMessage = "Method not allowed"

// NotFound answers requests for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, apperr.NotFound("Route", r.URL.Path))
}

// MethodNotAllowed answers requests using a method the route does not serve.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, apperr.New(MethodNotAllowedMessage, http.StatusMethodNotAllowed, nil))
}
