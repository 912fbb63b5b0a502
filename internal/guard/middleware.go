package guard

import (
	"context"
	"net/http"
	"strings"

	"sareemart/internal/auth/service"
	"sareemart/internal/domain"
)

type contextKey string

const principalCtxKey contextKey = "principal"

// SessionResolver turns raw session evidence into a Principal. Implemented by
// auth/service.TokenService; failures degrade to Anonymous, never error.
type SessionResolver interface {
	Resolve(raw string) domain.Principal
}

// RequireRole guards a route subtree. The principal is resolved and checked
// before any handler runs; a denied request is redirected and the handler
// never executes.
func RequireRole(resolver SessionResolver, required domain.Role, area Area) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := resolver.Resolve(credentialsFromRequest(r))

			decision := Authorize(principal, required, area)
			if !decision.Allow {
				http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), principalCtxKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal stored by RequireRole. The bool
// is false on routes that never passed through the guard.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(domain.Principal)
	return p, ok
}

func credentialsFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	if cookie, err := r.Cookie(service.SessionCookie); err == nil {
		return cookie.Value
	}

	return ""
}
