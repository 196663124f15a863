package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maigie/maigie-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResponseVariants(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantType    string
		wantMessage string
		wantDetails map[string]any
	}{
		{
			name:        "not found",
			err:         apperr.NotFound("User", "42"),
			wantStatus:  http.StatusNotFound,
			wantType:    "NotFoundError",
			wantMessage: "User not found: 42",
			wantDetails: map[string]any{},
		},
		{
			name:        "validation with details",
			err:         apperr.Validation("bad field", map[string]any{"field": "email"}),
			wantStatus:  http.StatusUnprocessableEntity,
			wantType:    "ValidationError",
			wantMessage: "bad field",
			wantDetails: map[string]any{"field": "email"},
		},
		{
			name:        "authentication",
			err:         apperr.Authentication(""),
			wantStatus:  http.StatusUnauthorized,
			wantType:    "AuthenticationError",
			wantMessage: "Authentication failed",
			wantDetails: map[string]any{},
		},
		{
			name:        "authorization",
			err:         apperr.Authorization(""),
			wantStatus:  http.StatusForbidden,
			wantType:    "AuthorizationError",
			wantMessage: "Insufficient permissions",
			wantDetails: map[string]any{},
		},
		{
			name:        "unclassified application error",
			err:         apperr.New("Something broke", 0, nil),
			wantStatus:  http.StatusInternalServerError,
			wantType:    "AppException",
			wantMessage: "Something broke",
			wantDetails: map[string]any{},
		},
		{
			name:        "wrapped application error",
			err:         fmt.Errorf("handler: %w", apperr.NotFound("Course", "")),
			wantStatus:  http.StatusNotFound,
			wantType:    "NotFoundError",
			wantMessage: "Course not found",
			wantDetails: map[string]any{},
		},
		{
			name:        "plain error",
			err:         errors.New("runtime error: integer divide by zero"),
			wantStatus:  http.StatusInternalServerError,
			wantType:    InternalErrorType,
			wantMessage: InternalErrorMessage,
			wantDetails: map[string]any{},
		},
		{
			name:        "nil error",
			err:         nil,
			wantStatus:  http.StatusInternalServerError,
			wantType:    InternalErrorType,
			wantMessage: InternalErrorMessage,
			wantDetails: map[string]any{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, envelope := ToResponse(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, envelope.Error.Type)
			assert.Equal(t, tc.wantMessage, envelope.Error.Message)
			assert.Equal(t, tc.wantDetails, envelope.Error.Details)
		})
	}
}

func TestToResponseIsDeterministic(t *testing.T) {
	err := apperr.Validation("bad field", map[string]any{"field": "email"})

	status1, envelope1 := ToResponse(err)
	status2, envelope2 := ToResponse(err)
	assert.Equal(t, status1, status2)
	assert.Equal(t, envelope1, envelope2)
}

func TestToResponseTypedNilAppError(t *testing.T) {
	var appErr *apperr.Error

	var status int
	var envelope ErrorEnvelope
	require.NotPanics(t, func() {
		status, envelope = ToResponse(fmt.Errorf("lookup: %w", appErr))
	})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, InternalErrorType, envelope.Error.Type)
}

func TestInternalEnvelopeIsBitExact(t *testing.T) {
	_, envelope := ToResponse(errors.New("secret database password leaked"))

	body, err := json.Marshal(envelope)
	require.NoError(t, err)
	assert.Equal(t,
		`{"error":{"message":"Internal server error","type":"InternalServerError","details":{}}}`,
		string(body))
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, apperr.NotFound("User", "42"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"error":{"message":"User not found: 42","type":"NotFoundError","details":{}}}`,
		rec.Body.String())
}

func TestRespondWithErrorHidesInternalDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, errors.New("pq: password authentication failed for user admin"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "password"),
		"internal error text must not reach the client")
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
