package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
)

// InitAuthKeys generates the in-memory signing keys for this instance.
//
// Keys live only in memory, so every access token becomes invalid when the
// service restarts. Refresh tokens are stored as fingerprints in the database
// and survive, letting clients mint a new access token after a restart.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing ephemeral key manager",
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
	)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		NumKeys:   cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("access tokens issued before this start are no longer valid")

	return keyManager, nil
}
