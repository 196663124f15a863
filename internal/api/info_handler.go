package api

import (
	"net/http"

	"github.com/maigie/maigie-api/internal/api/shared"
	"github.com/maigie/maigie-api/internal/apperr"
	"github.com/maigie/maigie-api/internal/config"
)

// InfoHandler serves the API description and the current user.
type InfoHandler struct {
	settings *config.Settings
}

// NewInfoHandler creates an InfoHandler.
func NewInfoHandler(settings *config.Settings) *InfoHandler {
	return &InfoHandler{settings: settings}
}

// Info handles GET {prefix}/.
func (h *InfoHandler) Info(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, InfoResponse{
		Name:        h.settings.AppName,
		Version:     h.settings.AppVersion,
		Description: h.settings.AppDescription,
		Environment: h.settings.Environment,
	})
}

// CurrentUser handles GET {prefix}/me. The user ID is set by the
// current-user middleware.
func (h *InfoHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, apperr.Authentication(""))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CurrentUserResponse{UserID: userID})
}
