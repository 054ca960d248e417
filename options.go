package hexvault

import (
	"io"
	"log"

	"hexvault/audit"
)

// Option configures a Vault at construction time.
type Option func(*Vault)

// WithLogger routes sink-forwarding failures to l instead of discarding
// them. hexvault never calls log.Fatal or log.Panic through this logger —
// a sink error never aborts a traversal.
func WithLogger(l *log.Logger) Option {
	return func(v *Vault) { v.logger = l }
}

// WithForwardSink registers s on the vault's audit log at construction
// time. Additional sinks can be added later with AddForwardSink.
func WithForwardSink(s audit.Sink) Option {
	return func(v *Vault) { v.pendingSinks = append(v.pendingSinks, s) }
}

func defaultLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
