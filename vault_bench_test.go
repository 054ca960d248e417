package hexvault

import (
	"strconv"
	"testing"
)

func BenchmarkVaultSeal(b *testing.B) {
	master, err := GenerateMasterKey()
	if err != nil {
		b.Fatalf("generate master key: %v", err)
	}
	v, err := New(master)
	if err != nil {
		b.Fatalf("new vault: %v", err)
	}
	if err := v.CreateCell("cell-a"); err != nil {
		b.Fatalf("create cell: %v", err)
	}
	ctx := LayerContext{AccessPolicyID: "policy-1", SessionID: "session-1"}
	payload := []byte("benchmark payload")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		name := "item-" + strconv.Itoa(i)
		if err := v.Seal("cell-a", name, SessionBound, ctx, payload); err != nil {
			b.Fatalf("seal: %v", err)
		}
	}
}

func BenchmarkVaultTraverse(b *testing.B) {
	master, err := GenerateMasterKey()
	if err != nil {
		b.Fatalf("generate master key: %v", err)
	}
	v, err := New(master)
	if err != nil {
		b.Fatalf("new vault: %v", err)
	}
	if err := v.CreateCell("cell-a"); err != nil {
		b.Fatalf("create cell: %v", err)
	}
	if err := v.CreateCell("cell-b"); err != nil {
		b.Fatalf("create cell: %v", err)
	}
	ctx := LayerContext{AccessPolicyID: "policy-1"}
	payload := []byte("benchmark payload")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		name := "item-" + strconv.Itoa(i)
		if err := v.Seal("cell-a", name, AccessGated, ctx, payload); err != nil {
			b.Fatalf("seal: %v", err)
		}
		if err := v.Traverse("cell-a", "cell-b", name, AccessGated, ctx, ctx); err != nil {
			b.Fatalf("traverse: %v", err)
		}
	}
}

