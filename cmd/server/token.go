package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/service/auth"
)

// tokenPair is printed by the token command.
type tokenPair struct {
	UserID       string `json:"user_id"`
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

var errTokenSubject = errors.New("a user ID or --refresh token is required")

// issueTokens writes a fresh access/refresh pair for userID. When
// refreshToken is set it is validated first and its subject is used.
func issueTokens(ctx context.Context, w io.Writer, settings *config.Settings, userID, refreshToken string) error {
	tokens, err := auth.NewTokenService(auth.TokenConfigFromSettings(settings))
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	if refreshToken != "" {
		claims, err := tokens.ValidateRefreshToken(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("invalid refresh token: %w", err)
		}
		if userID != "" && userID != claims.UserID {
			return fmt.Errorf("refresh token belongs to %q, not %q", claims.UserID, userID)
		}
		userID = claims.UserID
	}
	if userID == "" {
		return errTokenSubject
	}

	access, err := tokens.GenerateAccessToken(ctx, userID)
	if err != nil {
		return err
	}
	refresh, err := tokens.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenPair{
		UserID:       userID,
		TokenType:    "bearer",
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
