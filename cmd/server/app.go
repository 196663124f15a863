package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maigie/maigie-api/internal/config"
	"github.com/maigie/maigie-api/internal/platform/cache"
	"github.com/maigie/maigie-api/internal/platform/postgres"
	"github.com/maigie/maigie-api/internal/service/auth"
)

// connectTimeout bounds the startup connection attempts.
const connectTimeout = 10 * time.Second

// application holds the shared dependencies of the server and owns their
// cleanup on shutdown.
type application struct {
	settings *config.Settings
	logger   *slog.Logger

	db    *postgres.Database
	cache *cache.Redis

	apiKeyVerifier auth.APIKeyVerifier
	userResolver   auth.UserIDResolver
}

// newApplication wires the application from settings. No connections are
// opened until Run.
func newApplication(settings *config.Settings, logger *slog.Logger) (*application, error) {
	app := &application{
		settings: settings,
		logger:   logger,
		db:       postgres.NewDatabase(settings.DatabaseURL, logger),
		cache:    cache.NewRedis(settings.RedisURL, logger),
	}

	var err error
	app.apiKeyVerifier, err = newAPIKeyVerifier(settings)
	if err != nil {
		return nil, err
	}
	app.userResolver, err = newUserResolver(settings)
	if err != nil {
		return nil, err
	}

	if settings.IsProduction() {
		if settings.SecretKey == config.DefaultSecretKey {
			logger.Warn("SECRET_KEY is the development default in production")
		}
		if settings.Debug {
			logger.Warn("DEBUG is enabled in production")
		}
	}

	logger.Info("application initialized",
		"auth_provider", settings.AuthProvider,
		"api_key_check", settings.APIKeyHash != "")
	return app, nil
}

func newAPIKeyVerifier(settings *config.Settings) (auth.APIKeyVerifier, error) {
	if settings.APIKeyHash == "" {
		return auth.PlaceholderAPIKeyVerifier{}, nil
	}
	verifier, err := auth.NewBcryptAPIKeyVerifier(settings.APIKeyHash)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API key verifier: %w", err)
	}
	return verifier, nil
}

func newUserResolver(settings *config.Settings) (auth.UserIDResolver, error) {
	if settings.AuthProvider != config.AuthProviderJWT {
		return auth.PlaceholderUserIDResolver{}, nil
	}
	tokens, err := auth.NewTokenService(auth.TokenConfigFromSettings(settings))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	return auth.NewTokenUserIDResolver(tokens), nil
}

// connect opens the database and cache. Failures are logged and reported by
// the health endpoint; the server still starts.
func (app *application) connect(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := app.db.Connect(ctx); err != nil {
		app.logger.Warn("database unavailable at startup", "error", err)
	}
	if err := app.cache.Connect(ctx); err != nil {
		app.logger.Warn("cache unavailable at startup", "error", err)
	}
}

// Run connects the dependencies and serves HTTP until ctx is canceled or the
// process receives SIGINT or SIGTERM.
func (app *application) Run(ctx context.Context) error {
	app.connect(ctx)
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database and cache connections.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := app.cache.Disconnect(ctx); err != nil {
		app.logger.Error("error closing cache connection", "error", err)
	}
	if err := app.db.Disconnect(ctx); err != nil {
		app.logger.Error("error closing database connection", "error", err)
	}

	app.logger.Info("application shutdown completed")
}
