// Package keys owns HKDF-SHA256 key derivation and the zeroisation
// discipline for every key buffer in hexvault. Like internal/aead, it is
// one of the two places permitted to handle raw key bytes.
package keys

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"hexvault/errs"
)

// Size is the size in bytes of a master key and of every derived key.
const Size = 32

// DerivedKey is a 32-byte AES-256 key scoped to a single (cell, layer,
// context) triple. It is never persisted and is zeroised on release.
type DerivedKey struct {
	bytes [Size]byte
}

// Bytes exposes the raw key for one AEAD call. The caller must not retain
// the slice past that call — Zero overwrites the backing array.
func (k *DerivedKey) Bytes() []byte { return k.bytes[:] }

// Zero overwrites the key with zero bytes, reads them back through
// volatileFence as a best-effort guard against the stores being elided,
// then releases the memory lock taken at derivation time.
func (k *DerivedKey) Zero() {
	for i := range k.bytes {
		k.bytes[i] = 0
	}
	volatileFence(k.bytes[:])
	unlock(k.bytes[:])
}

// Derive runs HKDF-SHA256 with an empty salt over master, expanding the
// info string to a 32-byte output length. Independent info strings yield
// statistically independent key streams from one master key.
func Derive(master []byte, info string) (*DerivedKey, error) {
	reader := hkdf.New(sha256.New, master, nil, []byte(info))
	var dk DerivedKey
	if _, err := io.ReadFull(reader, dk.bytes[:]); err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, err, "hkdf expand failed")
	}
	lock(dk.bytes[:])
	return &dk, nil
}

// Lock pins an arbitrary key-sized byte slice against paging, mirroring
// what Derive does for a DerivedKey. Used by the Vault for the master key,
// which it owns directly rather than through a DerivedKey.
func Lock(b []byte) { lock(b) }

// Zero overwrites an arbitrary key-sized byte slice (used for the master
// key, which the Vault owns directly rather than through a DerivedKey).
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	volatileFence(b)
	unlock(b)
}

// volatileFence is a best-effort barrier against the compiler eliding the
// zeroing loop above as dead stores. Reading through a value the compiler
// cannot prove unused defeats simple dead-store elimination without
// requiring an assembly stub.
var sink byte

func volatileFence(b []byte) {
	for _, v := range b {
		sink ^= v
	}
}
