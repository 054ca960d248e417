// Package edge implements the traversal operation: the only way a sealed
// payload moves from one cell to another. Plaintext exists only for the
// duration of Traverse and is zeroised on every exit path.
package edge

import (
	"hexvault/errs"
	"hexvault/internal/cell"
	"hexvault/internal/keys"
	"hexvault/internal/stack"
)

// traverseRequest bundles the seven arguments Traverse receives so the
// internal traverse function takes a single parameter instead of seven
// positional ones.
type traverseRequest struct {
	master         []byte
	src, dst       *cell.Cell
	name           string
	target         stack.Layer
	srcCtx, dstCtx stack.LayerContext
}

// Traverse peels req.name from req.src under req.srcCtx, re-seals it into
// req.dst under req.dstCtx at the same target layer, and inserts the
// result into req.dst. It never returns the plaintext and never retains a
// reference to it beyond this call.
//
// The traversal layer must match the layer the source payload was sealed
// at; a mismatch fails closed as AuthenticationFailed before any key is
// derived or any AEAD call runs.
func Traverse(master []byte, src, dst *cell.Cell, name string, target stack.Layer, srcCtx, dstCtx stack.LayerContext) error {
	return traverse(traverseRequest{
		master: master,
		src:    src,
		dst:    dst,
		name:   name,
		target: target,
		srcCtx: srcCtx,
		dstCtx: dstCtx,
	})
}

func traverse(req traverseRequest) error {
	if req.src == req.dst {
		return errs.New(errs.SelfTraversal, "")
	}

	payload, err := req.src.Get(req.name)
	if err != nil {
		return err
	}
	if payload.SealedAt != req.target {
		return errs.New(errs.AuthenticationFailed, "traversal layer does not match sealed layer").WithLayerValue(req.target)
	}

	// Phase 1: peel under the source cell's keys.
	plaintext, err := stack.Peel(req.master, req.src.ID(), req.target, req.srcCtx, payload.Data)
	if err != nil {
		return err
	}

	// Phase 2: re-seal under the destination cell's keys.
	resealed, err := stack.Seal(req.master, req.dst.ID(), req.target, req.dstCtx, plaintext)
	keys.Zero(plaintext)
	if err != nil {
		return err
	}
	if err := req.dst.Insert(req.name, cell.Payload{Data: resealed, SealedAt: req.target}); err != nil {
		keys.Zero(resealed)
		return err
	}

	return nil
}
