package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/maigie/maigie-api/internal/platform/logger"
)

// ContextKey is the type of request-scoped context keys owned by the API layer.
type ContextKey string

// UserIDContextKey is the context key for the resolved current user ID.
const UserIDContextKey ContextKey = "userID"

// TraceIDLength is the length of a generated trace ID in hex characters.
const TraceIDLength = 32

// SetTraceID adds a fresh trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}

// SetUserID stores the current user ID in the context.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// GetUserID extracts the current user ID from the context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}

func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
