// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/entitlement"
	"github.com/renankelm10/cursera/internal/identity"
)

const identityKey contextKey = "identity"

// ResolveIdentity resolves the request's bearer credential into an identity
// and stores it in the request context. Runs on every route, including
// public ones: anonymous is a valid outcome, not a rejection. Handlers that
// gate content read the identity back and run the entitlement evaluation
// themselves.
func ResolveIdentity(
	resolver *identity.Resolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(r.Context(), ExtractToken(r))
			if err != nil {
				core.InternalServerError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. It assumes ResolveIdentity ran
// earlier in the chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFrom(r.Context()).IsAuthenticated() {
			core.JSONError(
				w,
				core.UnauthorizedError("authentication required"),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects everything but authenticated admins. Denial is a 403
// for authenticated non-admins and a 401 for anonymous callers, never a 500.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := identity.RequireAdmin(IdentityFrom(r.Context())); err != nil {
			if errors.Is(err, core.ErrUnauthorized) {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}
			core.JSONError(
				w,
				core.ForbiddenError("admin access required"),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// IdentityFrom returns the resolved identity, or anonymous when the
// middleware did not run.
func IdentityFrom(ctx context.Context) entitlement.Identity {
	if id, ok := ctx.Value(identityKey).(entitlement.Identity); ok {
		return id
	}
	return entitlement.Anonymous()
}

func GetUserID(ctx context.Context) string {
	return IdentityFrom(ctx).UserID
}
