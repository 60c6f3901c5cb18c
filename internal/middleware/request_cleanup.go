package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes fits the largest signed plan a client uploads.
const DefaultMaxBodyBytes = 1 << 20

// LimitRequestBody caps how much of a request body handlers may read, then
// drains and closes whatever is left once the handler returns.
func LimitRequestBody(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
