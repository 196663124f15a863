package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maigie/maigie-api/internal/api"
	apiMiddleware "github.com/maigie/maigie-api/internal/api/middleware"
)

// setupRouter creates the router with the middleware stack and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(apiMiddleware.TrustedHosts(app.settings.AllowedHosts))
	r.Use(apiMiddleware.CORS(app.settings))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	healthHandler := api.NewHealthHandler(app.settings, app.db, app.cache)
	infoHandler := api.NewInfoHandler(app.settings)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.apiKeyVerifier, app.userResolver)

	r.Get("/health", healthHandler.Health)

	apiRoutes := func(r chi.Router) {
		r.Use(authMiddleware.RequireAPIKey)
		r.Get("/", infoHandler.Info)

		r.With(authMiddleware.ResolveUser).Get("/me", infoHandler.CurrentUser)
	}

	// An empty prefix (or "/") serves the API from the root.
	if prefix := strings.TrimSuffix(app.settings.APIV1Prefix, "/"); prefix == "" {
		r.Group(apiRoutes)
	} else {
		r.Route(prefix, apiRoutes)
	}

	return r
}
