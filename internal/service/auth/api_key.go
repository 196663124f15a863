package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader is the request header carrying the client API key.
const APIKeyHeader = "X-API-Key"

// APIKeyVerifier decides whether a client API key is acceptable.
type APIKeyVerifier interface {
	// VerifyAPIKey reports whether key is valid. key is empty when the client
	// sent no key. An error means verification itself failed.
	VerifyAPIKey(ctx context.Context, key string) (bool, error)
}

// PlaceholderAPIKeyVerifier accepts every request, with or without a key.
// It is the default until API keys are provisioned.
type PlaceholderAPIKeyVerifier struct{}

// VerifyAPIKey always returns true.
func (PlaceholderAPIKeyVerifier) VerifyAPIKey(context.Context, string) (bool, error) {
	return true, nil
}

// BcryptAPIKeyVerifier accepts exactly the key whose bcrypt hash it holds.
type BcryptAPIKeyVerifier struct {
	hash []byte
}

// NewBcryptAPIKeyVerifier creates a verifier for the given bcrypt hash.
func NewBcryptAPIKeyVerifier(hash string) (*BcryptAPIKeyVerifier, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid API key hash: %w", err)
	}
	return &BcryptAPIKeyVerifier{hash: []byte(hash)}, nil
}

// VerifyAPIKey compares key with the stored hash.
func (v *BcryptAPIKeyVerifier) VerifyAPIKey(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(v.hash, []byte(key))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to compare API key: %w", err)
	}
}
