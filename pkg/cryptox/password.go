package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for new hashes. Existing hashes carry their own
// parameters in the PHC string so these can be raised without a migration.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrMalformedHash    = errors.New("invalid hash format")
)

// HashPassword returns a PHC-format argon2id hash of password+pepper:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
func HashPassword(password string) (string, error) {
	pepper, err := Pepper()
	if err != nil {
		return "", err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	sum := argon2.IDKey([]byte(password+pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// VerifyPassword compares password against a hash produced by HashPassword.
// It returns ErrPasswordMismatch on a wrong password and an error wrapping
// ErrMalformedHash when encoded is not a PHC argon2id string.
func VerifyPassword(password, encoded string) error {
	p, err := decodeHash(encoded)
	if err != nil {
		return err
	}

	pepper, err := Pepper()
	if err != nil {
		return err
	}

	// #nosec G115 - hash length comes from our own encoder
	computed := argon2.IDKey([]byte(password+pepper), p.salt, p.iterations, p.memory, p.parallelism, uint32(len(p.hash)))
	if subtle.ConstantTimeCompare(computed, p.hash) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

var dummyHash = sync.OnceValues(func() (string, error) {
	pw, err := GenerateToken(16)
	if err != nil {
		return "", err
	}
	return HashPassword(pw)
})

// DummyHash returns a hash of a random password, computed once per process.
// Verifying against it costs the same as a real check and never succeeds,
// which keeps "no such user" paths as slow as "wrong password" ones.
func DummyHash() (string, error) {
	return dummyHash()
}

type phcParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

func decodeHash(encoded string) (phcParams, error) {
	var p phcParams

	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, fmt.Errorf("%w: expected 6 parts", ErrMalformedHash)
	}
	if parts[1] != "argon2id" {
		return p, fmt.Errorf("%w: not argon2id", ErrMalformedHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return p, fmt.Errorf("%w: wrong version", ErrMalformedHash)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, fmt.Errorf("%w: parameters: %v", ErrMalformedHash, err)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, fmt.Errorf("%w: hash: %v", ErrMalformedHash, err)
	}
	if len(p.hash) == 0 {
		return p, fmt.Errorf("%w: empty hash", ErrMalformedHash)
	}
	return p, nil
}
