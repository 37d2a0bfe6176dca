// Package carray builds non-owning strided views over raw C memory.
//
// A View describes caller-owned bytes as an N-dimensional array of
// scalar elements. It is a pure description: construction never
// allocates, copies or frees the underlying memory, and reads and
// writes go straight through the base pointer. The caller keeps the
// allocation alive for as long as any view derived from it is used.
//
// # Construction
//
//	data := make([]float64, 6)
//	v, err := carray.C(&data[0], []int{2, 3}, nil)   // row-major, dtype from pointer
//	w, err := carray.F(&data[0], []int{2, 3}, nil)   // column-major
//	r, err := carray.New(h, 6, ctypes.Float64, carray.RowMajor)
//
// The pointer argument accepts a Handle, an unsafe.Pointer, or any Go
// pointer to a supported scalar. Typed pointers fix the element type:
// passing a contradicting dtype fails with dtype_mismatch, passing nil
// dtype adopts the pointer's own type. Opaque handles (unsafe.Pointer,
// carray.Opaque) carry no element type, so a dtype is required and any
// scalar dtype may reinterpret the bytes.
//
// # Strides and Contiguity
//
//	Order       strides for shape [2 3], 8-byte elements
//	────────────────────────────────────────────────────
//	RowMajor    [24 8]   last dimension dense
//	ColMajor    [8 16]   first dimension dense
//
// Strides are in bytes and may be negative after slicing with a
// negative step. Contiguity follows the numpy convention: dimensions of
// extent 0 or 1 impose no constraint, and an empty view is contiguous
// in both orders.
//
// # Access
//
// At and Set address one element per call with full indices. Index
// resolves leading dimensions to a lower-rank view, Slice restricts a
// single dimension with Python [start:stop:step] semantics (negative
// bounds count from the end, out-of-range bounds clamp). Both return
// views sharing the original memory, so writes through a subview are
// visible through every other view of the same bytes.
//
// Views are immutable after construction; the same View may be read
// and sliced from multiple goroutines. Writes to overlapping elements
// need external synchronization, exactly as with any shared memory.
package carray
