package hexvault

import "hexvault/internal/stack"

// validateIdentifier rejects the empty string and any identifier
// containing ':' or '|'. internal/stack owns this rule since it is the
// package that builds the HKDF info string those separators appear in;
// this is a thin re-export so every identifier accepted anywhere in the
// public API — cell ids, access policy ids, session ids, payload names —
// goes through the same check.
func validateIdentifier(id string) error {
	return stack.ValidateIdentifier(id)
}
