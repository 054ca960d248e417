package stack

import (
	"crypto/rand"
	"testing"
)

func BenchmarkSeal1KB(b *testing.B) {
	master := make([]byte, 32)
	rand.Read(master)
	pt := make([]byte, 1024)
	rand.Read(pt)
	ctx := LayerContext{AccessPolicyID: "policy-1", SessionID: "session-1"}
	b.SetBytes(int64(len(pt)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Seal(master, "cell-a", SessionBound, ctx, pt); err != nil {
			b.Fatalf("seal failed: %v", err)
		}
	}
}

func BenchmarkPeel1KB(b *testing.B) {
	master := make([]byte, 32)
	rand.Read(master)
	pt := make([]byte, 1024)
	rand.Read(pt)
	ctx := LayerContext{AccessPolicyID: "policy-1", SessionID: "session-1"}
	sealed, err := Seal(master, "cell-a", SessionBound, ctx, pt)
	if err != nil {
		b.Fatalf("seal failed: %v", err)
	}
	b.SetBytes(int64(len(pt)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Peel(master, "cell-a", SessionBound, ctx, sealed); err != nil {
			b.Fatalf("peel failed: %v", err)
		}
	}
}

func BenchmarkSealAtRestOnly1KB(b *testing.B) {
	master := make([]byte, 32)
	rand.Read(master)
	pt := make([]byte, 1024)
	rand.Read(pt)
	b.SetBytes(int64(len(pt)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Seal(master, "cell-a", AtRest, LayerContext{}, pt); err != nil {
			b.Fatalf("seal failed: %v", err)
		}
	}
}
