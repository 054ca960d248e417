//go:build linux || darwin

package keys

import "golang.org/x/sys/unix"

// lock pins key material so it cannot be paged to swap. Best-effort: a
// failure here (e.g. exceeding RLIMIT_MEMLOCK) does not fail derivation,
// since the alternative — refusing to operate — is worse for a library.
func lock(b []byte) { _ = unix.Mlock(b) }

func unlock(b []byte) { _ = unix.Munlock(b) }

// DisableCoreDumps sets RLIMIT_CORE to zero for the current process so a
// crash cannot leave a core file containing live key material on disk.
// Best-effort like lock/unlock: a Vault still functions if the limit
// cannot be lowered.
func DisableCoreDumps() error {
	rlim := unix.Rlimit{Cur: 0, Max: 0}
	return unix.Setrlimit(unix.RLIMIT_CORE, &rlim)
}
