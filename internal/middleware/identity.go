package middleware

import (
	"net/http"

	"github.com/2beens/roundtracker/internal/identity"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

var openPaths = map[string]bool{
	"/":     true,
	"/ping": true,
}

// Identity resolves the fingerprint header into a user key stored in the request
// context. Requests without a usable fingerprint are rejected.
func Identity() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.identity")
			defer span.End()

			// preflight, the fingerprint header is non-standard
			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if openPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			userKey, err := identity.KeyFromFingerprint(r.Header.Get(identity.Header))
			if err != nil {
				log.Tracef("[identity middleware] %s => %s", err, r.URL.Path)
				http.Error(w, "missing or invalid fingerprint", http.StatusUnauthorized)
				span.SetStatus(codes.Error, err.Error())
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(identity.WithUser(ctx, userKey)))
		})
	}
}
