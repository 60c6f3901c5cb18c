package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultAllowedOrigins are the web clients served when no list is configured.
var DefaultAllowedOrigins = []string{
	"https://gymrats.app",
	"https://www.gymrats.app",
	"http://localhost:8081",
	"http://localhost:19006",
}

// native mobile clients and tooling send no origin
var allowedAgentPrefixes = []string{
	"GymRats/",
	"okhttp/",
	"curl/",
	"test-agent",
}

const (
	corsAllowHeaders = "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization"
	corsAllowMethods = "POST, GET, OPTIONS, PUT, PATCH, DELETE"
)

func Cors(origins []string) func(next http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = DefaultAllowedOrigins
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			w.Header().Add("Vary", "Origin")

			if !allowed[origin] && !agentAllowed(r.Header.Get("User-Agent")) && r.URL.Path != "/health" {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)

			next.ServeHTTP(w, r)
		})
	}
}

func agentAllowed(userAgent string) bool {
	for _, prefix := range allowedAgentPrefixes {
		if strings.HasPrefix(userAgent, prefix) {
			return true
		}
	}
	return false
}
