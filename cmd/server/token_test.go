package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTokenPair(t *testing.T, out *bytes.Buffer) tokenPair {
	t.Helper()
	var pair tokenPair
	require.NoError(t, json.Unmarshal(out.Bytes(), &pair))
	return pair
}

func TestIssueTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	settings := testSettings()

	var out bytes.Buffer
	require.NoError(t, issueTokens(ctx, &out, settings, "student-1", ""))
	pair := decodeTokenPair(t, &out)
	assert.Equal(t, "student-1", pair.UserID)
	assert.Equal(t, "bearer", pair.TokenType)

	tokens, err := auth.NewTokenService(auth.TokenConfigFromSettings(settings))
	require.NoError(t, err)
	access, err := tokens.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student-1", access.UserID)
	refresh, err := tokens.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "student-1", refresh.UserID)

	t.Run("exchange refresh token", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, issueTokens(ctx, &out, settings, "", pair.RefreshToken))
		assert.Equal(t, "student-1", decodeTokenPair(t, &out).UserID)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		err := issueTokens(ctx, &bytes.Buffer{}, settings, "", pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrWrongTokenType)
	})

	t.Run("refresh token for another user", func(t *testing.T) {
		err := issueTokens(ctx, &bytes.Buffer{}, settings, "student-2", pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		err := issueTokens(ctx, &bytes.Buffer{}, settings, "", "")
		assert.ErrorIs(t, err, errTokenSubject)
	})
}

func TestIssueTokens_WeakSecret(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.SecretKey = "short"
	err := issueTokens(context.Background(), &bytes.Buffer{}, settings, "student-1", "")
	assert.Error(t, err)
}

func TestIssuedTokenAuthenticatesWithJWTProvider(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.AuthProvider = config.AuthProviderJWT
	router := newTestApp(t, settings).setupRouter()

	var out bytes.Buffer
	require.NoError(t, issueTokens(context.Background(), &out, settings, "student-9", ""))
	pair := decodeTokenPair(t, &out)

	rec := serve(router, http.MethodGet, "/api/v1/me", http.Header{"Authorization": {"Bearer " + pair.AccessToken}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"student-9"}`, rec.Body.String())
}
