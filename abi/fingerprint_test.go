package abi

import (
	"testing"

	"github.com/callsite/cabi/ctypes"
)

func TestFingerprintStable(t *testing.T) {
	sig := NewSignature(ctypes.Float64, ctypes.Float64, ctypes.PointerTo(ctypes.Int32))

	first, err := Fingerprint(sig)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	second, err := Fingerprint(sig)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if first != second {
		t.Error("same signature should digest identically")
	}
}

func TestFingerprintStructural(t *testing.T) {
	a := NewSignature(ctypes.Void, ctypes.StructOf(ctypes.Int32, ctypes.Float64))
	b := NewSignature(ctypes.Void, ctypes.StructOf(ctypes.Int32, ctypes.Float64))

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	fb, err := Fingerprint(b)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if fa != fb {
		t.Error("structurally equal signatures should digest identically")
	}
}

func TestFingerprintNamesIgnored(t *testing.T) {
	named := NewSignature(ctypes.Void, ctypes.RecordOf(
		ctypes.Field{Name: "x", Type: ctypes.Int32},
		ctypes.Field{Name: "y", Type: ctypes.Int32},
	))
	anon := NewSignature(ctypes.Void, ctypes.StructOf(ctypes.Int32, ctypes.Int32))

	fn, err := Fingerprint(named)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	fa, err := Fingerprint(anon)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if fn != fa {
		t.Error("field names must not affect the digest")
	}
}

func TestFingerprintDistinguishes(t *testing.T) {
	base := NewSignature(ctypes.Void, ctypes.Int32)

	variants := []Signature{
		NewSignature(ctypes.Void, ctypes.Uint32),
		NewSignature(ctypes.Void, ctypes.Int64),
		NewSignature(ctypes.Int32, ctypes.Int32),
		NewSignature(ctypes.Void, ctypes.Int32, ctypes.Int32),
		NewSignature(ctypes.Void, ctypes.PointerTo(ctypes.Int32)),
		NewSignature(ctypes.Void, ctypes.StructOf(ctypes.Int32)),
		NewSignature(ctypes.Void, ctypes.ArrayOf(ctypes.Int32, 1)),
		NewSignature(ctypes.Void, ctypes.ArrayOf(ctypes.Int32, 2)),
	}

	fb, err := Fingerprint(base)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	for i, v := range variants {
		fv, err := Fingerprint(v)
		if err != nil {
			t.Fatalf("Fingerprint(%d) error = %v", i, err)
		}
		if fv == fb {
			t.Errorf("signature %s collides with %s", v, base)
		}
	}
}

func TestFingerprintVoidPointerDistinct(t *testing.T) {
	opaque, err := Fingerprint(NewSignature(ctypes.Void, ctypes.VoidPtr))
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	typed, err := Fingerprint(NewSignature(ctypes.Void, ctypes.PointerTo(ctypes.Float64)))
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if opaque == typed {
		t.Error("void* and float64* must digest differently")
	}
}

func TestFingerprintNilType(t *testing.T) {
	if _, err := Fingerprint(NewSignature(ctypes.Void, nil)); err == nil {
		t.Error("nil argument type should fail")
	}
}
