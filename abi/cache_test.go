package abi

import (
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/callsite/cabi/ctypes"
)

func TestCacheSharesResults(t *testing.T) {
	cache := NewCache(mustClassifier(t))
	sig := NewSignature(ctypes.Float64, ctypes.StructOf(ctypes.Int32, ctypes.Int32, ctypes.Int32))

	w1, p1, err := cache.Classify(sig)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	w2, p2, err := cache.Classify(sig)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if w1 != w2 || p1 != p2 {
		t.Error("second lookup should return the memoized values")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestCacheStructuralHit(t *testing.T) {
	cache := NewCache(mustClassifier(t))

	w1, _, err := cache.Classify(NewSignature(ctypes.Void, ctypes.StructOf(ctypes.Int32, ctypes.Int32)))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	w2, _, err := cache.Classify(NewSignature(ctypes.Void, ctypes.StructOf(ctypes.Int32, ctypes.Int32)))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if w1 != w2 {
		t.Error("structurally equal signatures should hit the same entry")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestCacheErrorNotCached(t *testing.T) {
	cache := NewCache(mustClassifier(t))

	if _, _, err := cache.Classify(NewSignature(ctypes.Void, ctypes.Void)); err == nil {
		t.Fatal("expected error for void argument")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after failed classification, want 0", cache.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	cache := NewCache(mustClassifier(t))
	sigs := []Signature{
		NewSignature(ctypes.Float64, ctypes.Float64, ctypes.Float64),
		NewSignature(ctypes.Void, ctypes.StructOf(ctypes.Bool, ctypes.Int64, ctypes.Bool)),
		NewSignature(ctypes.StructOf(ctypes.Int32, ctypes.Int32, ctypes.Int32)),
		NewSignature(ctypes.Int64, ctypes.PointerTo(ctypes.Int64), ctypes.Int64),
	}

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for _, sig := range sigs {
				if _, _, err := cache.Classify(sig); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Classify() error = %v", err)
	}
	if cache.Len() != len(sigs) {
		t.Errorf("Len() = %d, want %d", cache.Len(), len(sigs))
	}
}

func TestPackageClassify(t *testing.T) {
	wrapper, plan, err := Classify(NewSignature(ctypes.Float64, ctypes.Float64, ctypes.Float64))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if wrapper.Ret != ctypes.Float64 || len(wrapper.Args) != 2 {
		t.Errorf("wrapper = %v", wrapper)
	}
	if len(plan.Args) != 2 {
		t.Errorf("plan args = %d, want 2", len(plan.Args))
	}
}
