// Package ctypes models C data types and their in-memory layout.
//
// Types are immutable trees built from primitive singletons and the
// PointerTo/StructOf/ArrayOf constructors. Layout follows the usual C
// rules for the selected Target: natural alignment, no packing.
//
// # Layout Rules
//
//	Type            Size    Alignment
//	──────────────────────────────────
//	bool/int8/uint8 1       1
//	int16/uint16    2       2
//	int32/float32   4       4
//	int64/float64   8       8
//	pointer         target  target
//	struct          sum     max field align
//	array[N]        N*elem  elem align
//
// Struct fields are laid out sequentially with padding so each field
// starts at a multiple of its alignment; total size rounds up to the
// largest field alignment.
//
// # Usage
//
//	calc := ctypes.NewCalculator(ctypes.AMD64SysV())
//	info, err := calc.Calculate(ctypes.StructOf(ctypes.Bool, ctypes.Int64, ctypes.Bool))
//	// info.Size == 24, info.Align == 8, info.FieldOffsets == [0 8 16]
//
// Two extra kinds exist only as classification outputs: Vector (packed
// float lanes, "float32x2") and PackedInt (odd-width integers, "int24").
// They never appear in logical signatures.
//
// Calculator is safe for concurrent use; computed layouts are cached
// per *Type.
package ctypes
