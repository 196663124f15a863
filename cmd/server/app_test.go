package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_SelectsHooks(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, testSettings())
	assert.IsType(t, auth.PlaceholderAPIKeyVerifier{}, app.apiKeyVerifier)
	assert.IsType(t, auth.PlaceholderUserIDResolver{}, app.userResolver)

	settings := testSettings()
	settings.AuthProvider = config.AuthProviderJWT
	app = newTestApp(t, settings)
	assert.IsType(t, &auth.TokenUserIDResolver{}, app.userResolver)
}

func TestNewApplication_InvalidAuthSettings(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.APIKeyHash = "not-a-bcrypt-hash"
	_, err := newApplication(settings, testLogger())
	assert.Error(t, err)

	settings = testSettings()
	settings.AuthProvider = config.AuthProviderJWT
	settings.SecretKey = "short"
	_, err = newApplication(settings, testLogger())
	assert.Error(t, err)
}

func TestNewApplication_WarnsOnProductionDefaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	settings := testSettings()
	settings.Environment = "production"
	settings.SecretKey = config.DefaultSecretKey
	settings.Debug = true

	app, err := newApplication(settings, slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	assert.Contains(t, buf.String(), "SECRET_KEY is the development default in production")
	assert.Contains(t, buf.String(), "DEBUG is enabled in production")

	buf.Reset()
	app, err = newApplication(testSettings(), slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	assert.NotContains(t, buf.String(), "in production")
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.Port = freePort(t)
	app := newTestApp(t, settings)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestConfigCommand_PrintsRedactedSettings(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"DATABASE_URL=postgresql://maigie:s3cret@db:5432/maigie\nSECRET_KEY=super-secret-value\n"), 0o600))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("PORT", "")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "--env-file", envFile})
	require.NoError(t, cmd.Execute())

	assert.NotContains(t, out.String(), "s3cret")
	assert.NotContains(t, out.String(), "super-secret-value")

	var printed map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, "Maigie API", printed["app_name"])
	assert.Equal(t, true, printed["secret_key_present"])
	assert.Contains(t, printed["database_url"], "db:5432")
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "seed", "config", "token"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("env-file"))
}

func TestApplication_DependencyLogsTagComponentOnce(t *testing.T) {
	mr := miniredis.RunT(t)

	var buf bytes.Buffer
	settings := testSettings()
	settings.RedisURL = "redis://" + mr.Addr() + "/0"
	app, err := newApplication(settings, slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	require.NoError(t, app.cache.Connect(context.Background()))

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "cache connection established") {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.Equal(t, 1, strings.Count(line, `"component"`), line)
}
