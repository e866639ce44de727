package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword_PHCFormat(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	require.Equal(t, "argon2id", parts[1])
	require.Equal(t, "v=19", parts[2])
	require.Equal(t, "m=19456,t=2,p=1", parts[3])
	require.NotEmpty(t, parts[4])
	require.NotEmpty(t, parts[5])
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("samepassword")
	require.NoError(t, err)
	b, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("samepassword", a))
	require.NoError(t, VerifyPassword("samepassword", b))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"exact match", "correct-password", nil},
		{"case difference", "Correct-Password", ErrPasswordMismatch},
		{"trailing space", "correct-password ", ErrPasswordMismatch},
		{"empty", "", ErrPasswordMismatch},
		{"very long", strings.Repeat("x", 10000), ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.password, hash)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"bad parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"bad hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("pw", tt.hash), ErrMalformedHash)
		})
	}
}

func TestPepper_PersistsAcrossReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")
	SetPepperPath(path)
	t.Cleanup(func() { SetPepperPath(filepath.Join(os.TempDir(), "cryptox-test-restore")) })

	first, err := Pepper()
	require.NoError(t, err)
	require.FileExists(t, path)

	hash, err := HashPassword("pw")
	require.NoError(t, err)

	// Dropping the cache must read back the same pepper from disk.
	SetPepperPath(path)
	second, err := Pepper()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.NoError(t, VerifyPassword("pw", hash))
}

func TestDummyHash(t *testing.T) {
	a, err := DummyHash()
	require.NoError(t, err)
	b, err := DummyHash()
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.True(t, strings.HasPrefix(a, "$argon2id$"))

	require.ErrorIs(t, VerifyPassword("password123", a), ErrPasswordMismatch)
	require.ErrorIs(t, VerifyPassword("", a), ErrPasswordMismatch)
}
