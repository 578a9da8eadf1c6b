package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

type sessionKey struct{}

// WithSession attaches the caller's session to ctx.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session RequireAuth attached.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*session.Session)
	return s, ok && s != nil
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth rejects requests without a bearer token for a live session.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.FromError(w, customError.WrapUnauthorized("missing bearer token"))
			return
		}

		sess, err := m.auth.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			response.FromError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireRole only lets sessions of the given role through. It must run
// after RequireAuth.
func RequireRole(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFrom(r.Context())
			if !ok {
				response.FromError(w, customError.WrapUnauthorized("not logged in"))
				return
			}
			if sess.Role != role {
				response.Forbidden(w, "this action requires role "+role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
