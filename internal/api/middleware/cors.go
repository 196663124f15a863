package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/cors"
	"github.com/maigie/maigie-api/internal/config"
)

// standardMethods replaces a "*" entry in CORS_ALLOW_METHODS; go-chi/cors
// matches methods literally.
var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CORS builds the CORS middleware from the CORS_* settings.
func CORS(s *config.Settings) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.CORSOrigins,
		AllowedMethods:   expandMethods(s.CORSAllowMethods),
		AllowedHeaders:   s.CORSAllowHeaders,
		ExposedHeaders:   []string{TraceIDHeader},
		AllowCredentials: s.CORSAllowCredentials,
		MaxAge:           600,
	})
}

func expandMethods(methods []string) []string {
	if slices.Contains(methods, "*") {
		return slices.Clone(standardMethods)
	}
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			out = append(out, m)
		}
	}
	return out
}
