package middleware

import (
	"io"
	"net/http"
)

// bodies larger than this are closed without reading the rest, the connection is dropped instead
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest drains what is left of the request body so the connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
				_ = r.Body.Close()
			}
		})
	}
}
