package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"faculty-reporting-backend-go/internal/services"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// WithAuth resolves the bearer credential into an Identity or ends the
// request with the matching 401 variant.
func WithAuth(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			token, claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					WriteError(w, http.StatusUnauthorized, "Token has expired")
					return
				}
				WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			if !token.Valid || claims["typ"] != "access" {
				WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			identity, ok := services.IdentityFromClaims(claims)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentIdentity(r *http.Request) services.Identity {
	if value, ok := r.Context().Value(ctxIdentity).(services.Identity); ok {
		return value
	}
	return services.Identity{}
}

// RequireCatalogManager gates course/class mutation to PRL and PL.
func RequireCatalogManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := CurrentIdentity(r)
		if !services.CanManageCatalog(identity.Role) {
			WriteError(w, http.StatusForbidden, "Unauthorized - Only PRL and PL can manage courses and classes")
			return
		}
		next.ServeHTTP(w, r)
	})
}
