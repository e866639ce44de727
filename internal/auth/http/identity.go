package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

type identityKey struct{}

// resolveIdentity loads the caller behind verified claims. It must run after
// httpx.AuthnMiddleware.
func resolveIdentity(users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := httpx.ClaimsFromContext(r.Context())
			if !ok {
				authsdk.ErrUnauthenticated.WriteError(w)
				return
			}
			id, err := users.Identity(r.Context(), claims)
			if err != nil {
				writeError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireAll rejects callers that do not meet every requirement with 403.
func requireAll(reqs ...service.Requirement) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := service.AuthorizeAll(callerFrom(r), reqs...); err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// callerFrom returns the identity placed by resolveIdentity, or the zero
// Identity which no requirement accepts.
func callerFrom(r *http.Request) domain.Identity {
	id, _ := r.Context().Value(identityKey{}).(domain.Identity)
	return id
}
