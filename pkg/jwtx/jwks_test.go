package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWK_PEM_Ed25519(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	pemStr, err := NewEd25519JWK("kid-1", "sig", AlgorithmEdDSA, publicKey).PEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))

	block, _ := pem.Decode([]byte(pemStr))
	require.NotNil(t, block)
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)
	require.Equal(t, publicKey, parsed.(ed25519.PublicKey))
}

func TestJWK_PEM_ES256(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	jwk := NewES256JWK("kid-2", "sig", AlgorithmES256, &priv.PublicKey)
	require.Equal(t, "EC", jwk.Kty)
	require.Len(t, jwk.X, 43)
	require.Len(t, jwk.Y, 43)

	pemStr, err := jwk.PEM()
	require.NoError(t, err)

	block, _ := pem.Decode([]byte(pemStr))
	require.NotNil(t, block)
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)
	ec, ok := parsed.(*ecdsa.PublicKey)
	require.True(t, ok)
	require.Zero(t, priv.PublicKey.X.Cmp(ec.X))
	require.Zero(t, priv.PublicKey.Y.Cmp(ec.Y))
}

func TestJWK_PublicKey_Rejects(t *testing.T) {
	tests := []struct {
		name string
		jwk  JWK
	}{
		{"rsa", JWK{Kty: "RSA"}},
		{"okp wrong curve", JWK{Kty: "OKP", Crv: "X25519", X: "AA"}},
		{"okp short key", JWK{Kty: "OKP", Crv: "Ed25519", X: "AAAA"}},
		{"ec wrong curve", JWK{Kty: "EC", Crv: "P-384"}},
		{"ec off curve", JWK{Kty: "EC", Crv: "P-256", X: "AQ", Y: "AQ"}},
		{"bad base64", JWK{Kty: "OKP", Crv: "Ed25519", X: "!!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.jwk.PublicKey()
			require.Error(t, err)
		})
	}
}

func TestKeySet_ResetFromJWKS(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ks := NewKeySet()
	require.False(t, ks.IsReady())

	require.NoError(t, ks.ResetFromJWKS(JWKS{Keys: []JWK{NewEd25519JWK("a", "sig", AlgorithmEdDSA, pub)}}))
	require.True(t, ks.IsReady())

	got, err := ks.Get("a")
	require.NoError(t, err)
	require.Equal(t, pub, got)

	_, err = ks.Get("missing")
	require.ErrorIs(t, err, ErrNoKey)

	require.Error(t, ks.ResetFromJWKS(JWKS{Keys: []JWK{{Kty: "RSA", Kid: "b"}}}))
	// A failed reset leaves the previous keys in place.
	_, err = ks.Get("a")
	require.NoError(t, err)
}
