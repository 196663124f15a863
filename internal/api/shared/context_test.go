package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()

	// Verify no trace ID in original context
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, TraceIDLength, "Expected trace ID length to be 32 hex characters")

	// Original context should remain unchanged
	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestGenerateTraceID(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool, iterations)
	for range iterations {
		id := generateTraceID()
		assert.Len(t, id, TraceIDLength)
		_, err := hex.DecodeString(id)
		assert.NoError(t, err, "Expected valid hex string")
		assert.False(t, seen[id], "Expected all trace IDs to be unique")
		seen[id] = true
	}
}

func TestUserIDContext(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(SetUserID(context.Background(), ""))
	assert.False(t, ok, "empty user IDs are treated as missing")

	userID, ok := GetUserID(SetUserID(context.Background(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}
