package auth

import (
	"context"
	"strings"
)

// PlaceholderUserID is the user ID returned while authentication is not wired.
const PlaceholderUserID = "user-id-placeholder"

// UserIDResolver resolves the ID of the user making a request.
type UserIDResolver interface {
	// ResolveUserID returns the user ID for the raw Authorization header
	// value; authorization is empty when the header was not sent.
	ResolveUserID(ctx context.Context, authorization string) (string, error)
}

// PlaceholderUserIDResolver ignores the request and returns PlaceholderUserID.
type PlaceholderUserIDResolver struct{}

// ResolveUserID always returns PlaceholderUserID.
func (PlaceholderUserIDResolver) ResolveUserID(context.Context, string) (string, error) {
	return PlaceholderUserID, nil
}

// TokenUserIDResolver resolves users from "Bearer <access token>" headers
// whose tokens were issued by a TokenService.
type TokenUserIDResolver struct {
	tokens *TokenService
}

// NewTokenUserIDResolver creates a resolver backed by tokens.
func NewTokenUserIDResolver(tokens *TokenService) *TokenUserIDResolver {
	return &TokenUserIDResolver{tokens: tokens}
}

// ResolveUserID validates the bearer access token and returns its subject.
// A missing header yields ErrMissingToken and any other scheme ErrInvalidToken.
func (r *TokenUserIDResolver) ResolveUserID(ctx context.Context, authorization string) (string, error) {
	token, err := bearerToken(authorization)
	if err != nil {
		return "", err
	}

	claims, err := r.tokens.ValidateAccessToken(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func bearerToken(authorization string) (string, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}
