package postgres

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maigie/maigie-api/internal/apperr"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// MapError maps a database error to an application error. The original error
// is kept as the cause so it can still be logged. Errors without a mapping
// are returned unchanged and surface as internal errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Record", "", apperr.WithCause(err))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return apperr.New("Resource already exists", http.StatusConflict,
				map[string]any{"constraint": pgErr.ConstraintName}, apperr.WithCause(err))
		case foreignKeyViolationCode:
			return apperr.Validation("Referenced resource does not exist",
				map[string]any{"constraint": pgErr.ConstraintName}, apperr.WithCause(err))
		case checkViolationCode:
			return apperr.Validation("Value violates a constraint",
				map[string]any{"constraint": pgErr.ConstraintName}, apperr.WithCause(err))
		case notNullViolationCode:
			return apperr.Validation("Missing required value",
				map[string]any{"column": pgErr.ColumnName}, apperr.WithCause(err))
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, ErrNotConnected) {
		return apperr.New("Database unavailable", http.StatusServiceUnavailable, nil, apperr.WithCause(err))
	}

	return err
}
