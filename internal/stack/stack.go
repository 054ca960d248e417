// Package stack sequences the three encryption layers bottom-up on seal
// and top-down on peel. It never exposes an intermediate layer's
// ciphertext outside its own call scope.
package stack

import (
	"hexvault/errs"
	"hexvault/internal/aead"
	"hexvault/internal/keys"
	"hexvault/internal/layer"
)

// Layer re-exports the closed three-variant enum so callers of this
// package (and, transitively, the public API) never import internal/layer
// directly.
type Layer = layer.Layer

const (
	AtRest       = layer.AtRest
	AccessGated  = layer.AccessGated
	SessionBound = layer.SessionBound
)

// LayerContext carries the optional identifiers each layer's key
// derivation needs. A zero-value LayerContext satisfies only AtRest.
type LayerContext struct {
	AccessPolicyID string
	SessionID      string
}

// ValidateIdentifier rejects the empty string and any identifier
// containing ':' or '|'. Both characters are structural separators in
// the HKDF info string this package builds from a cell id, a layer tag,
// and a context id; letting either appear inside an identifier would let
// a crafted AccessPolicyID/SessionID/CellId/payload name collide two
// info strings that are supposed to be distinct, deriving the same key
// for two logically different contexts.
func ValidateIdentifier(id string) error {
	if id == "" {
		return errs.New(errs.InvalidIdentifier, "identifier must not be empty")
	}
	for _, r := range id {
		if r == ':' || r == '|' {
			return errs.New(errs.InvalidIdentifier, "identifier must not contain ':' or '|'")
		}
	}
	return nil
}

// contextID returns the info-string component for a single layer,
// failing with MissingContext if the identifier that layer needs is
// absent, or InvalidIdentifier if it contains a reserved separator.
func (c LayerContext) contextID(l Layer) (string, error) {
	switch l {
	case AtRest:
		return "", nil
	case AccessGated:
		if c.AccessPolicyID == "" {
			return "", errs.New(errs.MissingContext, "access_policy_id required").WithLayerValue(l)
		}
		if err := ValidateIdentifier(c.AccessPolicyID); err != nil {
			return "", err
		}
		return c.AccessPolicyID, nil
	case SessionBound:
		if c.AccessPolicyID == "" || c.SessionID == "" {
			return "", errs.New(errs.MissingContext, "access_policy_id and session_id required").WithLayerValue(l)
		}
		if err := ValidateIdentifier(c.AccessPolicyID); err != nil {
			return "", err
		}
		if err := ValidateIdentifier(c.SessionID); err != nil {
			return "", err
		}
		return c.AccessPolicyID + "|" + c.SessionID, nil
	default:
		return "", errs.New(errs.CryptoBackendFailure, "invalid layer ordinal")
	}
}

// Satisfies reports whether c supplies every identifier target and every
// layer below it requires.
func (c LayerContext) Satisfies(target Layer) bool {
	return c.checkThrough(target) == nil
}

func (c LayerContext) checkThrough(target Layer) error {
	for l := AtRest; l <= target; l++ {
		if _, err := c.contextID(l); err != nil {
			return err
		}
	}
	return nil
}

func infoString(cellID string, l Layer, contextID string) string {
	return cellID + ":" + l.Tag() + ":" + contextID
}

// Seal encrypts plaintext through layers 0..=target inclusive, bottom-up.
// Context validation happens once before any AEAD operation is attempted.
func Seal(master []byte, cellID string, target Layer, ctx LayerContext, plaintext []byte) ([]byte, error) {
	if err := ctx.checkThrough(target); err != nil {
		return nil, err
	}

	buf := append([]byte(nil), plaintext...)
	for l := AtRest; l <= target; l++ {
		contextID, _ := ctx.contextID(l) // already validated by checkThrough above
		dk, err := keys.Derive(master, infoString(cellID, l, contextID))
		if err != nil {
			return nil, err
		}
		nonce, err := aead.RandomNonce()
		if err != nil {
			dk.Zero()
			return nil, err
		}
		ct, err := aead.Seal(dk.Bytes(), nonce, nil, buf)
		dk.Zero()
		if err != nil {
			return nil, err
		}
		buf = append(nonce, ct...)
	}
	return buf, nil
}

// Peel decrypts from layer top down to layer 0. Wrong keys or a tampered
// ciphertext surface as AuthenticationFailed scoped to the layer at which
// verification failed.
func Peel(master []byte, cellID string, top Layer, ctx LayerContext, sealed []byte) ([]byte, error) {
	if err := ctx.checkThrough(top); err != nil {
		return nil, err
	}

	buf := sealed
	for i := int(top); i >= int(AtRest); i-- {
		l := Layer(i)
		if len(buf) < aead.NonceSize {
			return nil, errs.New(errs.AuthenticationFailed, "ciphertext shorter than nonce").WithLayerValue(l)
		}
		nonce, ct := buf[:aead.NonceSize], buf[aead.NonceSize:]

		contextID, _ := ctx.contextID(l) // already validated by checkThrough above
		dk, err := keys.Derive(master, infoString(cellID, l, contextID))
		if err != nil {
			return nil, err
		}
		pt, err := aead.Open(dk.Bytes(), nonce, nil, ct)
		dk.Zero()
		if err != nil {
			if ae, ok := err.(*errs.Error); ok && ae.Kind == errs.AuthenticationFailed {
				return nil, ae.WithLayerValue(l)
			}
			return nil, err
		}
		buf = pt
	}
	return buf, nil
}
