//go:build !linux && !darwin

package keys

func lock(b []byte)   {}
func unlock(b []byte) {}

// DisableCoreDumps is a no-op on platforms without RLIMIT_CORE.
func DisableCoreDumps() error { return nil }
