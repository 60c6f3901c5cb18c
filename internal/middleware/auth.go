package middleware

import (
	"context"
	"net/http"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/auth"
	"github.com/2beens/gymrats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=middleware_test

type tokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type revocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddlewareHandler struct {
	tokens       tokenParser
	revocations  revocationChecker
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(
	tokens tokenParser,
	revocations revocationChecker,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		tokens:      tokens,
		revocations: revocations,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,

			// register-login:
			"/auth/register": true,
			"/auth/login":    true,
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	return h.allowedPaths[path]
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := auth.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				apperrors.WriteHTTP(w, apperrors.Unauthorized("middleware.auth", "missing token"))
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			claims, err := h.tokens.Parse(token)
			if err != nil {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
				apperrors.WriteHTTP(w, apperrors.Unauthorized("middleware.auth", "invalid token"))
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			revoked, err := h.revocations.IsRevoked(ctx, claims.TokenID)
			if err != nil {
				log.Errorf("[failed revocation check] => %s: %s", r.URL.Path, err)
				apperrors.WriteHTTP(w, apperrors.Unauthorized("middleware.auth", "invalid token"))
				span.SetStatus(codes.Error, "check-revoked-err")
				span.RecordError(err)
				return
			}
			if revoked {
				log.Tracef("[revoked token] [auth middleware] unauthorized => %s", r.URL.Path)
				apperrors.WriteHTTP(w, apperrors.Unauthorized("middleware.auth", "token revoked"))
				span.SetStatus(codes.Error, "token-revoked")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
