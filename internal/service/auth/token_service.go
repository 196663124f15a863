package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/platform/logger"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// minSecretLength is the shortest accepted HMAC secret.
const minSecretLength = 32

// TokenConfig configures a TokenService.
type TokenConfig struct {
	SecretKey            string
	Algorithm            string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
}

// TokenConfigFromSettings derives the token configuration from the
// SECRET_KEY, ALGORITHM and token lifetime settings.
func TokenConfigFromSettings(s *config.Settings) TokenConfig {
	return TokenConfig{
		SecretKey:            s.SecretKey,
		Algorithm:            s.Algorithm,
		AccessTokenLifetime:  time.Duration(s.AccessTokenExpireMinutes) * time.Minute,
		RefreshTokenLifetime: time.Duration(s.RefreshTokenExpireDays) * 24 * time.Hour,
	}
}

// Claims represents the validated content of a token.
type Claims struct {
	UserID    string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// tokenClaims defines the structure of JWT claims we use
type tokenClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-signed JWT access and refresh tokens.
type TokenService struct {
	method          *jwt.SigningMethodHMAC
	signingKey      []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	timeFunc        func() time.Time // Injectable for testing
	clockSkew       time.Duration    // Allowed time difference for validation to handle clock drift
}

// NewTokenService creates a TokenService. Only the HMAC algorithms HS256,
// HS384 and HS512 are supported.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	if len(cfg.SecretKey) < minSecretLength {
		return nil, fmt.Errorf("secret key must be at least %d characters", minSecretLength)
	}
	if cfg.AccessTokenLifetime <= 0 || cfg.RefreshTokenLifetime <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	return &TokenService{
		method:          method,
		signingKey:      []byte(cfg.SecretKey),
		accessLifetime:  cfg.AccessTokenLifetime,
		refreshLifetime: cfg.RefreshTokenLifetime,
		timeFunc:        time.Now,
		clockSkew:       2 * time.Minute,
	}, nil
}

// GenerateAccessToken creates a signed access token for userID.
func (s *TokenService) GenerateAccessToken(ctx context.Context, userID string) (string, error) {
	return s.generate(ctx, userID, TokenTypeAccess, s.accessLifetime)
}

// GenerateRefreshToken creates a signed refresh token for userID.
// Refresh tokens live longer and are only accepted by ValidateRefreshToken.
func (s *TokenService) GenerateRefreshToken(ctx context.Context, userID string) (string, error) {
	return s.generate(ctx, userID, TokenTypeRefresh, s.refreshLifetime)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *TokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeRefresh)
}

func (s *TokenService) generate(
	ctx context.Context,
	userID string,
	tokenType string,
	lifetime time.Duration,
) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("cannot issue %s token without a user ID", tokenType)
	}

	now := s.timeFunc()
	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "failed to sign token",
			"error", err,
			"token_type", tokenType,
			"signing_method", s.method.Alg())
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *TokenService) validate(ctx context.Context, tokenString string, tokenType string) (*Claims, error) {
	log := logger.FromContext(ctx)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.DebugContext(ctx, "token validation failed: token expired", "token_type", tokenType)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.DebugContext(ctx, "token validation failed: token not yet valid", "token_type", tokenType)
			return nil, ErrTokenNotYetValid
		default:
			log.DebugContext(ctx, "token validation failed",
				"token_type", tokenType,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		log.DebugContext(ctx, "token validation failed: wrong token type",
			"expected", tokenType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	result := &Claims{
		UserID:    claims.Subject,
		TokenType: claims.TokenType,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}
