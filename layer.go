package hexvault

import "hexvault/internal/stack"

// Layer identifies one of the three cascading encryption layers.
type Layer = stack.Layer

const (
	// AtRest requires no context and is always the innermost layer.
	AtRest = stack.AtRest
	// AccessGated requires a non-empty AccessPolicyID.
	AccessGated = stack.AccessGated
	// SessionBound requires both an AccessPolicyID and a SessionID.
	SessionBound = stack.SessionBound
)

// LayerContext carries the identifiers a Seal, Unseal, Peek, or Traverse
// call needs to satisfy the layers it touches. Which fields are required
// depends on the target layer: AtRest needs none, AccessGated needs
// AccessPolicyID, SessionBound needs both.
type LayerContext = stack.LayerContext
