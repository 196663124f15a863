package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maigie/maigie-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    apperr.Kind
		wantStatus  int
		wantDetails map[string]any
	}{
		{
			name:        "pgx no rows",
			err:         pgx.ErrNoRows,
			wantKind:    apperr.KindNotFound,
			wantStatus:  http.StatusNotFound,
			wantDetails: map[string]any{},
		},
		{
			name:        "database/sql no rows wrapped",
			err:         fmt.Errorf("get user: %w", sql.ErrNoRows),
			wantKind:    apperr.KindNotFound,
			wantStatus:  http.StatusNotFound,
			wantDetails: map[string]any{},
		},
		{
			name:        "unique violation",
			err:         &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			wantKind:    apperr.KindApp,
			wantStatus:  http.StatusConflict,
			wantDetails: map[string]any{"constraint": "users_email_key"},
		},
		{
			name:        "foreign key violation",
			err:         &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "goals_user_id_fkey"},
			wantKind:    apperr.KindValidation,
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetails: map[string]any{"constraint": "goals_user_id_fkey"},
		},
		{
			name:        "check violation",
			err:         &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tier_check"},
			wantKind:    apperr.KindValidation,
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetails: map[string]any{"constraint": "tier_check"},
		},
		{
			name:        "not null violation",
			err:         &pgconn.PgError{Code: notNullViolationCode, ColumnName: "email"},
			wantKind:    apperr.KindValidation,
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetails: map[string]any{"column": "email"},
		},
		{
			name:        "not connected",
			err:         ErrNotConnected,
			wantKind:    apperr.KindApp,
			wantStatus:  http.StatusServiceUnavailable,
			wantDetails: map[string]any{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)

			appErr, ok := apperr.As(mapped)
			require.True(t, ok, "expected an application error")
			assert.Equal(t, tc.wantKind, appErr.Kind())
			assert.Equal(t, tc.wantStatus, appErr.StatusCode())
			assert.Equal(t, tc.wantDetails, appErr.Details())
			assert.ErrorIs(t, mapped, tc.err, "original error should be preserved as the cause")
		})
	}
}

func TestMapErrorPassThrough(t *testing.T) {
	assert.NoError(t, MapError(nil))

	plain := errors.New("something unexpected")
	assert.Same(t, plain, MapError(plain))

	other := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(other), MapError(other))
}
