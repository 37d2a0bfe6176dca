package ctypes

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{Int32, "int32"},
		{Float64, "float64"},
		{Bool, "bool"},
		{VoidPtr, "void*"},
		{PointerTo(Float64), "float64*"},
		{PointerTo(PointerTo(Int8)), "int8**"},
		{ArrayOf(Int8, 8), "int8[8]"},
		{PointerTo(ArrayOf(Int8, 8)), "int8[8]*"},
		{StructOf(Int32, ArrayOf(Int8, 8)), "{int32, int8[8]}"},
		{StructOf(), "{}"},
		{RecordOf(Field{Name: "x", Type: Int32}, Field{Name: "y", Type: Float64}), "{x: int32, y: float64}"},
		{VectorOf(Float32, 2), "float32x2"},
		{PackedIntOf(24), "int24"},
		{StructOf(StructOf(Int32, Int32), Int8, Int16), "{{int32, int32}, int8, int16}"},
		{nil, "<nil>"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.typ.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Type
		want bool
	}{
		{"same singleton", Int32, Int32, true},
		{"distinct primitives", Int32, Uint32, false},
		{"pointer same pointee", PointerTo(Float64), PointerTo(Float64), true},
		{"pointer different pointee", PointerTo(Float64), PointerTo(Int64), false},
		{"opaque vs typed pointer", VoidPtr, PointerTo(Int8), false},
		{"struct same shape", StructOf(Int32, Int32), StructOf(Int32, Int32), true},
		{"struct different arity", StructOf(Int32), StructOf(Int32, Int32), false},
		{"struct names ignored", RecordOf(Field{Name: "a", Type: Int32}), StructOf(Int32), true},
		{"array same", ArrayOf(Int8, 8), ArrayOf(Int8, 8), true},
		{"array length differs", ArrayOf(Int8, 8), ArrayOf(Int8, 7), false},
		{"vector same", VectorOf(Float32, 2), VectorOf(Float32, 2), true},
		{"packed same bits", PackedIntOf(24), PackedIntOf(24), true},
		{"packed different bits", PackedIntOf(24), PackedIntOf(40), false},
		{"nil right", Int32, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTypePredicates(t *testing.T) {
	if !PointerTo(Float64).IsScalar() {
		t.Error("typed pointer should be scalar")
	}
	if !VoidPtr.IsScalar() {
		t.Error("void* should be scalar")
	}
	if Void.IsScalar() {
		t.Error("void should not be scalar")
	}
	if StructOf(Int32).IsScalar() {
		t.Error("struct should not be scalar")
	}
	if !VoidPtr.Opaque() {
		t.Error("void* should be opaque")
	}
	if PointerTo(Int8).Opaque() {
		t.Error("int8* should not be opaque")
	}
	if !StructOf(Int32).IsAggregate() || !ArrayOf(Int8, 2).IsAggregate() {
		t.Error("struct and array should be aggregates")
	}
	if Int64.IsAggregate() {
		t.Error("int64 should not be an aggregate")
	}
}

func TestIntOfWidth(t *testing.T) {
	tests := []struct {
		bytes int
		want  *Type
	}{
		{1, Int8},
		{2, Int16},
		{4, Int32},
		{8, Int64},
		{3, nil},
		{0, nil},
	}

	for _, tc := range tests {
		if got := IntOfWidth(tc.bytes); got != tc.want {
			t.Errorf("IntOfWidth(%d) = %v, want %v", tc.bytes, got, tc.want)
		}
	}
}

func TestSameRepresentation(t *testing.T) {
	if !PointerTo(Float64).SameRepresentation(PointerTo(Int32)) {
		t.Error("pointers should share one representation")
	}
	if !Int32.SameRepresentation(Int32) {
		t.Error("int32 should match itself")
	}
	if Int32.SameRepresentation(Uint32) {
		t.Error("int32 and uint32 differ in kind")
	}
	if Float64.SameRepresentation(Int64) {
		t.Error("float64 and int64 must not match")
	}
}
