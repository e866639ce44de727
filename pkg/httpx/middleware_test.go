package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var hasDeadline bool
	h := httpx.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, hasDeadline)
}

func TestRecover(t *testing.T) {
	h := httpx.Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"icon":"error"`)
}

func TestAuthnMiddleware(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "staffdesk", NumKeys: 1})
	require.NoError(t, err)

	var got jwtx.Claims
	h := httpx.AuthnMiddleware(km.Verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpx.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		rec := serve("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		require.Contains(t, rec.Body.String(), `"error":"unauthenticated"`)
	})

	t.Run("garbage token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, serve("Bearer nope").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		c := jwtx.NewAccessClaims(jwtx.Subject{ID: "u1"}, "staffdesk", time.Minute, time.Now().Add(-time.Hour))
		tok, err := km.GetSigner().Sign(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, serve("Bearer "+tok).Code)
	})

	t.Run("valid token", func(t *testing.T) {
		c := jwtx.NewAccessClaims(jwtx.Subject{ID: "u1", Role: "admin", Email: "a@x.com"}, "staffdesk", time.Minute, time.Now())
		tok, err := km.GetSigner().Sign(c)
		require.NoError(t, err)

		require.Equal(t, http.StatusNoContent, serve("Bearer "+tok).Code)
		require.Equal(t, "u1", got.Subject)
		require.Equal(t, "admin", got.Role)
	})
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	decode := func(s string) error {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(s))
		return httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
	}

	require.NoError(t, decode(`{"email":"a@x.com"}`))
	require.Error(t, decode(``))
	require.Error(t, decode(`{"email":"a@x.com","extra":1}`))
	require.Error(t, decode(`{"email":"a"}{"email":"b"}`))
	require.Error(t, decode(`[`))
}
