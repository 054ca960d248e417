package hexvault

import (
	crand "crypto/rand"

	"hexvault/errs"
	"hexvault/internal/keys"
)

// GenerateMasterKey returns a fresh, cryptographically random 32-byte
// master key suitable for New. Callers are responsible for its storage;
// hexvault never persists it.
func GenerateMasterKey() ([]byte, error) {
	k := make([]byte, keys.Size)
	if _, err := crand.Read(k); err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, err, "master key generation failed")
	}
	return k, nil
}
