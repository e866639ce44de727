package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Supported JWT signing algorithms.
const (
	AlgorithmES256 = "ES256"
	AlgorithmEdDSA = "EdDSA"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

// KeySigner signs with a PKCS8 private key. The algorithm is derived from the
// key type: Ed25519 keys sign EdDSA, P-256 keys sign ES256.
type KeySigner struct {
	kid    string
	method jwt.SigningMethod
	key    crypto.Signer
	jwk    JWK
}

// NewSigner loads a PKCS8 PEM private key and returns a signer for it.
func NewSigner(kid string, pemKey []byte) (*KeySigner, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM private key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (PKCS8 required)", block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	switch key := priv.(type) {
	case ed25519.PrivateKey:
		pub := key.Public().(ed25519.PublicKey)
		return &KeySigner{
			kid:    kid,
			method: jwt.SigningMethodEdDSA,
			key:    key,
			jwk:    NewEd25519JWK(kid, "sig", AlgorithmEdDSA, pub),
		}, nil

	case *ecdsa.PrivateKey:
		if key.Curve != elliptic.P256() {
			return nil, fmt.Errorf("jwtx: unsupported ECDSA curve %s", key.Curve.Params().Name)
		}
		return &KeySigner{
			kid:    kid,
			method: jwt.SigningMethodES256,
			key:    key,
			jwk:    NewES256JWK(kid, "sig", AlgorithmES256, &key.PublicKey),
		}, nil

	default:
		return nil, fmt.Errorf("jwtx: unsupported private key type %T", priv)
	}
}

func (s *KeySigner) Alg() string    { return s.method.Alg() }
func (s *KeySigner) KID() string    { return s.kid }
func (s *KeySigner) PublicJWK() JWK { return s.jwk }

// Sign turns claims into a compact JWS carrying the kid header.
func (s *KeySigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
