// Package aead is the thin contract over AES-256-GCM used by every
// encryption layer in the stack. It is one of exactly two packages that
// touch raw key bytes directly (the other is internal/keys).
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	crand "crypto/rand"

	"hexvault/errs"
)

// KeySize is the AES-256 key size in bytes.
const KeySize = 32

// NonceSize is the GCM nonce size in bytes (96 bits).
const NonceSize = 12

// RandomNonce returns a cryptographically secure, uniformly random 96-bit nonce.
func RandomNonce() ([]byte, error) {
	n := make([]byte, NonceSize)
	if _, err := crand.Read(n); err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, err, "random nonce generation failed")
	}
	return n, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errs.New(errs.CryptoBackendFailure, "key must be 32 bytes")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, err, "aes cipher construction failed")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, err, "gcm construction failed")
	}
	return gcm, nil
}

// Seal authenticates and encrypts plaintext under key/nonce/aad, returning
// ciphertext with the 128-bit tag appended.
func Seal(key, nonce, aad, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, errs.New(errs.CryptoBackendFailure, "nonce must be 12 bytes")
	}
	return gcm.Seal(nil, nonce, plaintext, aad), nil
}

// Open verifies and decrypts ciphertext produced by Seal. A tag mismatch,
// wrong key, or wrong aad are all indistinguishable and reported the same
// way: an unscoped AuthenticationFailed error. Callers that know the
// layer being peeled should attach it via (*errs.Error).WithLayerValue.
func Open(key, nonce, aad, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, errs.New(errs.AuthenticationFailed, "nonce truncated")
	}
	pt, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, errs.New(errs.AuthenticationFailed, "tag verification failed")
	}
	return pt, nil
}
