package ctypes

import (
	"errors"
	"sync"
	"testing"

	cabierr "github.com/callsite/cabi/errors"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator(AMD64SysV())

	tests := []struct {
		typ   *Type
		name  string
		size  int
		align int
	}{
		{Bool, "bool", 1, 1},
		{Int8, "int8", 1, 1},
		{Uint8, "uint8", 1, 1},
		{Int16, "int16", 2, 2},
		{Uint16, "uint16", 2, 2},
		{Int32, "int32", 4, 4},
		{Uint32, "uint32", 4, 4},
		{Float32, "float32", 4, 4},
		{Int64, "int64", 8, 8},
		{Uint64, "uint64", 8, 8},
		{Float64, "float64", 8, 8},
		{VoidPtr, "void star", 8, 8},
		{PointerTo(Float64), "float64 star", 8, 8},
		{PackedIntOf(24), "int24", 3, 1},
		{VectorOf(Float32, 2), "float32x2", 8, 8},
		{VectorOf(Float32, 4), "float32x4", 16, 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info, err := c.Calculate(tc.typ)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateStruct(t *testing.T) {
	c := NewCalculator(AMD64SysV())

	tests := []struct {
		typ     *Type
		name    string
		size    int
		align   int
		offsets []int
	}{
		{StructOf(), "empty", 0, 1, nil},
		{StructOf(Int32), "single int32", 4, 4, []int{0}},
		{StructOf(Int32, Int32), "two int32", 8, 4, []int{0, 4}},
		{StructOf(Int16, Int32, Int32), "int16 then two int32", 12, 4, []int{0, 4, 8}},
		{StructOf(Bool, Int64, Bool), "bool int64 bool", 24, 8, []int{0, 8, 16}},
		{StructOf(Int8, Int16), "int8 int16 padded", 4, 2, []int{0, 2}},
		{StructOf(Float64, Int32), "float64 int32", 16, 8, []int{0, 8}},
		{StructOf(StructOf(Int32, Int32), Int8, Int16), "nested struct", 12, 4, []int{0, 8, 10}},
		{StructOf(VoidPtr, ArrayOf(Int64, 2)), "pointer and array", 24, 8, []int{0, 8}},
		{StructOf(ArrayOf(Int8, 8), Int8, Int8, Int8), "byte array tail", 11, 1, []int{0, 8, 9, 10}},
		{StructOf(Bool, Bool, Bool, Bool), "four bools", 4, 1, []int{0, 1, 2, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info, err := c.Calculate(tc.typ)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
			if len(info.FieldOffsets) != len(tc.offsets) {
				t.Fatalf("offsets: got %v, want %v", info.FieldOffsets, tc.offsets)
			}
			for i, want := range tc.offsets {
				if info.FieldOffsets[i] != want {
					t.Errorf("offset[%d]: got %d, want %d", i, info.FieldOffsets[i], want)
				}
			}
		})
	}
}

func TestCalculateArray(t *testing.T) {
	c := NewCalculator(AMD64SysV())

	tests := []struct {
		typ   *Type
		name  string
		size  int
		align int
	}{
		{ArrayOf(Int8, 8), "int8x8", 8, 1},
		{ArrayOf(Int32, 3), "int32x3", 12, 4},
		{ArrayOf(Int64, 0), "empty int64 array", 0, 8},
		{ArrayOf(StructOf(Int32, Int8), 2), "padded struct elements", 16, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info, err := c.Calculate(tc.typ)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	c := NewCalculator(AMD64SysV())

	t.Run("void field", func(t *testing.T) {
		_, err := c.Calculate(StructOf(Int32, Void))
		if err == nil {
			t.Fatal("expected error for void field")
		}
		if !errors.Is(err, &cabierr.Error{Phase: cabierr.PhaseLayout, Kind: cabierr.KindUnsupportedType}) {
			t.Errorf("error = %v, want layout/unsupported_type", err)
		}
	})

	t.Run("nil type", func(t *testing.T) {
		_, err := c.Calculate(nil)
		if err == nil {
			t.Fatal("expected error for nil type")
		}
	})

	t.Run("array overflow", func(t *testing.T) {
		huge := ArrayOf(ArrayOf(ArrayOf(Int64, 1<<31), 1<<31), 1<<31)
		_, err := c.Calculate(huge)
		if err == nil {
			t.Fatal("expected overflow error")
		}
		if !errors.Is(err, &cabierr.Error{Phase: cabierr.PhaseLayout, Kind: cabierr.KindOverflow}) {
			t.Errorf("error = %v, want layout/overflow", err)
		}
	})
}

func TestCalculateCached(t *testing.T) {
	c := NewCalculator(AMD64SysV())
	typ := StructOf(Bool, Int64, Bool)

	first, err := c.Calculate(typ)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	second, err := c.Calculate(typ)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if first.Size != second.Size || first.Align != second.Align {
		t.Errorf("cached layout differs: %+v vs %+v", first, second)
	}
}

func TestCalculateConcurrent(t *testing.T) {
	c := NewCalculator(AMD64SysV())
	typ := StructOf(StructOf(Int32, Int32), Int8, Int16, ArrayOf(Float64, 4))

	var wg sync.WaitGroup
	results := make([]Layout, 16)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			info, err := c.Calculate(typ)
			if err != nil {
				t.Errorf("Calculate() error = %v", err)
				return
			}
			results[slot] = info
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i].Size != results[0].Size || results[i].Align != results[0].Align {
			t.Errorf("result %d differs: %+v vs %+v", i, results[i], results[0])
		}
	}
}

func TestTargetByTriple(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		target, err := TargetByTriple("")
		if err != nil {
			t.Fatalf("TargetByTriple() error = %v", err)
		}
		if target.Triple != "x86_64-linux-gnu" || target.PtrSize != 8 {
			t.Errorf("target = %+v", target)
		}
	})

	t.Run("known triple", func(t *testing.T) {
		if _, err := TargetByTriple("x86_64-linux-gnu"); err != nil {
			t.Fatalf("TargetByTriple() error = %v", err)
		}
	})

	t.Run("unknown triple", func(t *testing.T) {
		_, err := TargetByTriple("aarch64-apple-darwin")
		if err == nil {
			t.Fatal("expected error for unknown triple")
		}
	})
}
