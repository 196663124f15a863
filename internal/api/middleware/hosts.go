package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/maigie/maigie-api/internal/api/shared"
	"github.com/maigie/maigie-api/internal/apperr"
)

// InvalidHostMessage is returned when the Host header is not allowed.
const InvalidHostMessage = "Invalid host header"

// TrustedHosts rejects requests whose Host header does not match one of the
// allowed patterns. "*" allows every host and "*.example.com" allows any
// subdomain of example.com. The port is ignored.
func TrustedHosts(allowed []string) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowed))
	allowAll := false
	for _, p := range allowed {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "*" {
			allowAll = true
		}
		if p != "" {
			patterns = append(patterns, p)
		}
	}

	return func(next http.Handler) http.Handler {
		if allowAll {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hostAllowed(hostname(r.Host), patterns) {
				shared.RespondWithError(w, r, apperr.New(InvalidHostMessage, http.StatusBadRequest, nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hostname(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	return strings.ToLower(strings.Trim(host, "[]"))
}

func hostAllowed(host string, patterns []string) bool {
	for _, p := range patterns {
		if strings.HasPrefix(p, "*.") {
			if strings.HasSuffix(host, p[1:]) {
				return true
			}
			continue
		}
		if host == p {
			return true
		}
	}
	return false
}
