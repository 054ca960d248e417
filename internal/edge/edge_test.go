package edge

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"hexvault/errs"
	"hexvault/internal/cell"
	"hexvault/internal/stack"
)

func testMaster(t *testing.T) []byte {
	m := make([]byte, 32)
	if _, err := rand.Read(m); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return m
}

func TestTraverseLeavesSourceUnchangedAndReseals(t *testing.T) {
	master := testMaster(t)
	src := cell.New("cell-a")
	dst := cell.New("cell-b")
	ctx := stack.LayerContext{AccessPolicyID: "p1"}

	sealed, err := stack.Seal(master, src.ID(), stack.AccessGated, ctx, []byte("payload"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if err := src.Insert("item", cell.Payload{Data: sealed, SealedAt: stack.AccessGated}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := Traverse(master, src, dst, "item", stack.AccessGated, ctx, ctx); err != nil {
		t.Fatalf("traverse: %v", err)
	}

	if !src.Contains("item") {
		t.Fatal("traversal must leave the source cell unchanged, not remove the payload")
	}
	moved, err := dst.Get("item")
	if err != nil {
		t.Fatalf("get from dst: %v", err)
	}

	pt, err := stack.Peel(master, dst.ID(), stack.AccessGated, ctx, moved.Data)
	if err != nil {
		t.Fatalf("peel from dst: %v", err)
	}
	if !bytes.Equal(pt, []byte("payload")) {
		t.Fatal("plaintext mismatch after traversal")
	}

	// Sealed under the destination cell's id now, so the source cell's
	// keys must not open it.
	if _, err := stack.Peel(master, src.ID(), stack.AccessGated, ctx, moved.Data); err == nil {
		t.Fatal("expected moved payload to reject the source cell's keys")
	}
}

func TestTraverseRejectsSelf(t *testing.T) {
	master := testMaster(t)
	c := cell.New("cell-a")
	ctx := stack.LayerContext{}
	sealed, _ := stack.Seal(master, c.ID(), stack.AtRest, ctx, []byte("x"))
	c.Insert("item", cell.Payload{Data: sealed, SealedAt: stack.AtRest})

	err := Traverse(master, c, c, "item", stack.AtRest, ctx, ctx)
	if !errors.Is(err, errs.ErrSelfTraversal) {
		t.Fatalf("expected SelfTraversal, got %v", err)
	}
}

func TestTraverseRejectsLayerMismatch(t *testing.T) {
	master := testMaster(t)
	src := cell.New("cell-a")
	dst := cell.New("cell-b")
	ctx := stack.LayerContext{}
	sealed, _ := stack.Seal(master, src.ID(), stack.AtRest, ctx, []byte("x"))
	src.Insert("item", cell.Payload{Data: sealed, SealedAt: stack.AtRest})

	err := Traverse(master, src, dst, "item", stack.AccessGated, ctx, ctx)
	if !errors.Is(err, errs.ErrAuthenticationFailed) {
		t.Fatalf("expected AuthenticationFailed for layer mismatch, got %v", err)
	}
	if !src.Contains("item") {
		t.Fatal("failed traversal must leave the source cell untouched")
	}
}

func TestTraverseLeavesSourceIntactOnDestinationFailure(t *testing.T) {
	master := testMaster(t)
	src := cell.New("cell-a")
	dst := cell.New("cell-b")
	ctx := stack.LayerContext{AccessPolicyID: "p1"}
	sealed, _ := stack.Seal(master, src.ID(), stack.AccessGated, ctx, []byte("x"))
	src.Insert("item", cell.Payload{Data: sealed, SealedAt: stack.AccessGated})
	dst.Insert("item", cell.Payload{Data: []byte("occupied"), SealedAt: stack.AccessGated})

	err := Traverse(master, src, dst, "item", stack.AccessGated, ctx, ctx)
	if !errors.Is(err, errs.ErrDuplicatePayload) {
		t.Fatalf("expected DuplicatePayload, got %v", err)
	}
	if !src.Contains("item") {
		t.Fatal("source cell lost its payload despite destination insert failing")
	}
}
