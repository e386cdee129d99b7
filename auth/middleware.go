package auth

import (
	"net/http"
	"strings"

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/render"
)

// JWTMiddleware verifies the bearer access token from the Authorization header
// and adds the user id to the request context.
func JWTMiddleware(parser TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				render.Error(w, r, apperror.NewAuthError("authorization header is missing", nil))
				return
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
				render.Error(w, r, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := parser.ParseToken(strings.TrimSpace(tokenString), tokenTypeAccess)
			if err != nil {
				render.Error(w, r, apperror.NewAuthError("invalid token", err))
				return
			}

			ctx := NewContextWithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MustUserID returns the authenticated user id or writes a 401. Handlers
// mounted behind JWTMiddleware use it to read the caller.
func MustUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		render.Error(w, r, apperror.NewAuthError("authentication required", nil))
		return 0, false
	}
	return id, true
}
