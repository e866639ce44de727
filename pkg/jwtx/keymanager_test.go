package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testSubject() jwtx.Subject {
	return jwtx.Subject{
		ID:       "5f0e1c56-3c1e-4b7a-9d3a-0b1a2c3d4e5f",
		Role:     "admin",
		Username: "root",
		Email:    "root@example.com",
		FullName: "Root User",
	}
}

func TestNewEphemeralKeyManager(t *testing.T) {
	tests := []struct {
		name    string
		alg     string
		numKeys int
		wantAlg string
		wantN   int
	}{
		{"default algorithm", "", 0, jwtx.AlgorithmEdDSA, 3},
		{"EdDSA single", jwtx.AlgorithmEdDSA, 1, jwtx.AlgorithmEdDSA, 1},
		{"ES256", jwtx.AlgorithmES256, 2, jwtx.AlgorithmES256, 2},
		{"clamped", jwtx.AlgorithmEdDSA, 50, jwtx.AlgorithmEdDSA, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
				Algorithm: tt.alg,
				Issuer:    "staffdesk",
				NumKeys:   tt.numKeys,
			})
			require.NoError(t, err)
			require.Equal(t, tt.wantAlg, km.Algorithm())
			require.Equal(t, tt.wantN, km.NumSigners())
			require.True(t, km.IsReady())
			require.Len(t, km.KeySet.PublicJWKS().Keys, tt.wantN)

			for _, k := range km.KeySet.PublicJWKS().Keys {
				require.True(t, strings.HasPrefix(k.Kid, "staffdesk-"))
				require.Equal(t, tt.wantAlg, k.Alg)
			}
		})
	}
}

func TestNewEphemeralKeyManager_Errors(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA})
	require.Error(t, err)

	_, err = jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: "RS256", Issuer: "staffdesk"})
	require.Error(t, err)
}

func TestKeyManager_SignAndVerify(t *testing.T) {
	for _, alg := range []string{jwtx.AlgorithmEdDSA, jwtx.AlgorithmES256} {
		t.Run(alg, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: alg, Issuer: "staffdesk"})
			require.NoError(t, err)

			claims := jwtx.NewAccessClaims(testSubject(), "staffdesk", time.Minute, time.Now())
			token, err := km.GetSigner().Sign(claims)
			require.NoError(t, err)

			got, err := km.Verifier.Verify(token)
			require.NoError(t, err)
			require.Equal(t, claims.Subject, got.Subject)
			require.Equal(t, "admin", got.Role)
			require.Equal(t, "root", got.Username)
			require.Equal(t, "root@example.com", got.Email)
			require.Equal(t, "Root User", got.FullName)
		})
	}
}

func TestVerifier_Rejects(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "staffdesk", NumKeys: 1})
	require.NoError(t, err)
	signer := km.GetSigner()

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewAccessClaims(testSubject(), "staffdesk", time.Minute, time.Now().Add(-time.Hour))
		tok, err := signer.Sign(c)
		require.NoError(t, err)

		_, err = km.Verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := jwtx.NewAccessClaims(testSubject(), "elsewhere", time.Minute, time.Now())
		tok, err := signer.Sign(c)
		require.NoError(t, err)

		_, err = km.Verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := km.Verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("tampered payload", func(t *testing.T) {
		c := jwtx.NewAccessClaims(testSubject(), "staffdesk", time.Minute, time.Now())
		tok, err := signer.Sign(c)
		require.NoError(t, err)

		other := testSubject()
		other.Role = "manager"
		forged, err := signer.Sign(jwtx.NewAccessClaims(other, "staffdesk", time.Minute, time.Now()))
		require.NoError(t, err)

		parts := strings.Split(tok, ".")
		forgedParts := strings.Split(forged, ".")
		_, err = km.Verifier.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("foreign key", func(t *testing.T) {
		other, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "staffdesk", NumKeys: 1})
		require.NoError(t, err)

		tok, err := other.GetSigner().Sign(jwtx.NewAccessClaims(testSubject(), "staffdesk", time.Minute, time.Now()))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})
}

func TestNewSigner_RejectsBadPEM(t *testing.T) {
	_, err := jwtx.NewSigner("kid", []byte("garbage"))
	require.Error(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := jwtx.NewSigner("kid", pemKey)
	require.NoError(t, err)
	require.Equal(t, jwtx.AlgorithmEdDSA, s.Alg())
	require.Equal(t, "kid", s.KID())
}
