package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIError_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrValidation.WithDetails(map[string]string{"email": "required"}).WriteError(w)
	}))
	defer srv.Close()

	_, err := NewSDKClient(srv.URL).Login(context.Background(), LoginRequest{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrValidation)
	require.NotErrorIs(t, err, ErrConflict)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, IconWarning, apiErr.Icon)
	require.Equal(t, "required", apiErr.Details["email"])
}

func TestAPIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewSDKClient(srv.URL).GetLiveness(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInternal, apiErr.Code)
}

func TestSession_RefreshesExpiredToken(t *testing.T) {
	var refreshes atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.RefreshToken != "rt-1" {
			ErrInvalidToken.WriteError(w)
			return
		}
		refreshes.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "at-2", TokenType: "Bearer", ExpiresIn: 900})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-2" {
			ErrUnauthenticated.WriteError(w)
			return
		}
		_ = json.NewEncoder(w).Encode(UserResponse{ID: "u1", Email: "a@x.com"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewSDKClient(srv.URL)
	// expires_in 0 puts the token already past the refresh skew.
	s := client.NewSessionFromTokens("at-1", "rt-1", 0)

	me, err := s.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", me.ID)
	require.Equal(t, "at-2", s.AccessToken())
	require.Equal(t, "rt-1", s.RefreshToken())

	_, err = s.Me(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, refreshes.Load())
}

func TestSession_NoRefreshToken(t *testing.T) {
	s := NewSDKClient("http://127.0.0.1:0").NewSessionFromTokens("at", "", 0)
	_, err := s.Me(context.Background())
	require.Error(t, err)
}

func TestBootstrap_SendsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/bootstrap", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get(BootstrapTokenHeader))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(BootstrapResponse{UserID: "root"})
	}))
	defer srv.Close()

	out, err := NewSDKClient(srv.URL).Bootstrap(context.Background(), "secret", BootstrapRequest{
		Email: "root@example.com", Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "root", out.UserID)
}

func TestBootstrapRequest_Validate(t *testing.T) {
	require.Nil(t, BootstrapRequest{Email: "root@example.com", Password: "password123"}.Validate())

	errs := BootstrapRequest{Email: "Root <root@example.com>", Password: "short"}.Validate()
	require.Contains(t, errs, "email")
	require.Equal(t, "too short (min 8)", errs["password"])

	errs = BootstrapRequest{}.Validate()
	require.Equal(t, "required", errs["email"])
	require.Equal(t, "required", errs["password"])
}
