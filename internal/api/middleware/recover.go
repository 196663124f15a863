package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/maigie/maigie-api/internal/api/shared"
	"github.com/maigie/maigie-api/internal/platform/logger"
	"github.com/maigie/maigie-api/internal/redact"
)

// Recoverer turns a panic in a downstream handler into the internal error
// envelope. The panic is logged once, with its stack. http.ErrAbortHandler is re-panicked so net/http can abort the
// connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			ctx := r.Context()
			logger.FromContext(ctx).ErrorContext(ctx, "panic recovered",
				"panic", redact.String(fmt.Sprint(rec)),
				"stack", string(debug.Stack()),
			)
			status, envelope := shared.ToResponse(fmt.Errorf("panic: %v", rec))
			shared.RespondWithJSON(w, r, status, envelope)
		}()

		next.ServeHTTP(w, r)
	})
}
