package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/maigie/maigie-api/internal/apperr"
	"github.com/maigie/maigie-api/internal/platform/logger"
	"github.com/maigie/maigie-api/internal/redact"
)

// Fixed envelope values for errors that are not application errors.
const (
	InternalErrorMessage = "Internal server error"
	InternalErrorType    = "InternalServerError"
)

// ErrorBody is the inner object of the error envelope.
type ErrorBody struct {
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Details map[string]any `json:"details"`
}

// ErrorEnvelope is the JSON shape of every error response:
//
//	{"error": {"message": "...", "type": "...", "details": {...}}}
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ToResponse maps err to a status code and error envelope. Application errors
// (also when wrapped) keep their status, message and details. Every other error
// becomes a 500 with a fixed message so internals never reach the client.
func ToResponse(err error) (int, ErrorEnvelope) {
	if appErr, ok := apperr.As(err); ok && appErr != nil {
		return appErr.StatusCode(), ErrorEnvelope{
			Error: ErrorBody{
				Message: appErr.Message(),
				Type:    appErr.Kind().String(),
				Details: appErr.Details(),
			},
		}
	}

	return http.StatusInternalServerError, ErrorEnvelope{
		Error: ErrorBody{
			Message: InternalErrorMessage,
			Type:    InternalErrorType,
			Details: map[string]any{},
		},
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode JSON response",
			"error", err)
	}
}

// RespondWithError writes the error envelope for err and logs it.
//
// Log level strategy:
// - 5xx errors: ERROR, with the redacted underlying error
// - everything else: DEBUG
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status, envelope := ToResponse(err)

	attrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_type", envelope.Error.Type),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("go_error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger.FromContext(ctx).LogAttrs(ctx, level, "API error response", attrs...)
	RespondWithJSON(w, r, status, envelope)
}
