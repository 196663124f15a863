package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maigie/maigie-api/internal/api/shared"
	"github.com/maigie/maigie-api/internal/apperr"
	"github.com/maigie/maigie-api/internal/service/auth"
)

// Authentication failure messages.
const (
	InvalidAPIKeyMessage = "Invalid API key"
	MissingTokenMessage  = "Authorization header required"
	ExpiredTokenMessage  = "Token expired"
	InvalidTokenMessage  = "Invalid token"
)

// AuthMiddleware runs the API-key and current-user hooks.
type AuthMiddleware struct {
	verifier auth.APIKeyVerifier
	resolver auth.UserIDResolver
}

// NewAuthMiddleware creates an AuthMiddleware. Nil collaborators fall back to
// the placeholder implementations.
func NewAuthMiddleware(verifier auth.APIKeyVerifier, resolver auth.UserIDResolver) *AuthMiddleware {
	if verifier == nil {
		verifier = auth.PlaceholderAPIKeyVerifier{}
	}
	if resolver == nil {
		resolver = auth.PlaceholderUserIDResolver{}
	}
	return &AuthMiddleware{verifier: verifier, resolver: resolver}
}

// RequireAPIKey checks the X-API-Key header with the configured verifier.
func (m *AuthMiddleware) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := m.verifier.VerifyAPIKey(r.Context(), r.Header.Get(auth.APIKeyHeader))
		if err != nil {
			shared.RespondWithError(w, r, fmt.Errorf("verify api key: %w", err))
			return
		}
		if !ok {
			shared.RespondWithError(w, r, apperr.Authentication(InvalidAPIKeyMessage))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ResolveUser hands the Authorization header to the configured resolver and
// stores the resulting user ID in the request context.
func (m *AuthMiddleware) ResolveUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.resolver.ResolveUserID(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			shared.RespondWithError(w, r, resolveError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.SetUserID(r.Context(), userID)))
	})
}

func resolveError(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return apperr.Authentication(MissingTokenMessage, apperr.WithCause(err))
	case errors.Is(err, auth.ErrExpiredToken):
		return apperr.Authentication(ExpiredTokenMessage, apperr.WithCause(err))
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return apperr.Authentication(InvalidTokenMessage, apperr.WithCause(err))
	default:
		if _, ok := apperr.As(err); ok {
			return err
		}
		return fmt.Errorf("resolve user: %w", err)
	}
}
