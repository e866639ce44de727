package jwtx

import (
	"fmt"
	"math/rand/v2"

	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
)

const (
	defaultNumKeys = 3
	maxNumKeys     = 10
)

// KeyManager owns the signing keys of one service instance together with the
// KeySet and Verifier built from them.
//
// Keys are ephemeral: generated at startup, held only in memory, never
// persisted. A restart invalidates every outstanding access token, which is
// acceptable because refresh tokens are opaque and live in the database.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	algorithm string
	signers   []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Algorithm is AlgorithmEdDSA (default when empty) or AlgorithmES256.
	Algorithm string

	// Issuer is stamped into and enforced on every token.
	Issuer string

	// NumKeys is how many signing keys to generate; clamped to 1..10,
	// defaults to 3.
	NumKeys int
}

// NewEphemeralKeyManager generates opts.NumKeys signing keys and wires them
// into a KeySet and a Verifier.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	alg := opts.Algorithm
	if alg == "" {
		alg = AlgorithmEdDSA
	}
	if alg != AlgorithmEdDSA && alg != AlgorithmES256 {
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, ES256)", alg)
	}

	n := opts.NumKeys
	if n <= 0 {
		n = defaultNumKeys
	}
	n = min(n, maxNumKeys)

	keyset := NewKeySet()
	signers := make([]Signer, 0, n)
	for i := range n {
		signer, err := generateSigner(alg)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate signer %d: %w", i+1, err)
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier:  NewVerifier(keyset, VerifyOptions{Issuer: opts.Issuer}),
		KeySet:    keyset,
		algorithm: alg,
		signers:   signers,
	}, nil
}

func generateSigner(alg string) (Signer, error) {
	kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	kid = "staffdesk-" + kid

	var pemBytes []byte
	switch alg {
	case AlgorithmES256:
		pemBytes, err = cryptox.GenerateES256Key()
	default:
		pemBytes, err = cryptox.GenerateEd25519Key()
	}
	if err != nil {
		return nil, err
	}
	return NewSigner(kid, pemBytes)
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string { return km.algorithm }

// IsReady returns true if the KeyManager has keys loaded.
func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }

// NumSigners returns the number of signing keys.
func (km *KeyManager) NumSigners() int { return len(km.signers) }

// GetSigner returns one of the signing keys at random. The slice is fixed
// after construction so no locking is needed.
func (km *KeyManager) GetSigner() Signer {
	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}
