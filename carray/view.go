package carray

import (
	"unsafe"

	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/errors"
)

// Order selects how extents map onto memory.
type Order uint8

const (
	RowMajor Order = iota // last dimension varies fastest
	ColMajor              // first dimension varies fastest
)

func (o Order) String() string {
	if o == ColMajor {
		return "column-major"
	}
	return "row-major"
}

// View is a non-owning strided description of caller-owned memory.
// It never allocates, copies or frees the viewed bytes, and it cannot
// know when they are released; keeping the memory alive while a View is
// used is entirely the caller's contract.
type View struct {
	base     unsafe.Pointer
	dtype    *ctypes.Type
	shape    []int
	strides  []int // bytes per step, possibly negative after slicing
	elemSize int
	cContig  bool
	fContig  bool
}

// New builds a view over ptr. ptr may be a Handle, an unsafe.Pointer or
// a Go scalar pointer (see HandleOf). shape is an int for a flat 1-D
// view or an []int of extents. A nil dtype uses the handle's element
// type; an opaque handle then fails with missing_dtype. A dtype that
// contradicts a typed handle's representation fails with dtype_mismatch,
// but any dtype may reinterpret an opaque handle.
func New(ptr any, shape any, dtype *ctypes.Type, order Order) (*View, error) {
	h, err := HandleOf(ptr)
	if err != nil {
		return nil, err
	}

	dims, err := normalizeShape(shape)
	if err != nil {
		return nil, err
	}

	if dtype == nil {
		if h.elem == nil {
			return nil, errors.MissingDtype()
		}
		dtype = h.elem
	} else if h.elem != nil && !dtype.SameRepresentation(h.elem) {
		return nil, errors.DtypeMismatch(dtype.String(), ctypes.PointerTo(h.elem).String())
	}
	if !dtype.IsScalar() {
		return nil, errors.New(errors.PhaseView, errors.KindUnsupportedType).
			Value(dtype.String()).
			Detail("dtype %s is not a sized scalar", dtype.String()).
			Build()
	}

	elemSize := scalarSize(dtype)
	count := 1
	for _, n := range dims {
		var ok bool
		count, ok = mulChecked(count, n)
		if !ok {
			return nil, errors.InvalidShape("element count overflows")
		}
	}
	if _, ok := mulChecked(count, elemSize); !ok {
		return nil, errors.InvalidShape("view size overflows")
	}
	if h.ptr == nil && count > 0 {
		return nil, errors.InvalidPointer("nil pointer")
	}

	v := &View{
		base:     h.ptr,
		dtype:    dtype,
		shape:    dims,
		strides:  stridesFor(dims, elemSize, order),
		elemSize: elemSize,
	}
	v.cContig, v.fContig = contiguity(v.shape, v.strides, elemSize)
	return v, nil
}

// C builds a row-major view; the counterpart of F.
func C(ptr any, shape any, dtype *ctypes.Type) (*View, error) {
	return New(ptr, shape, dtype, RowMajor)
}

// F builds a column-major view; the counterpart of C.
func F(ptr any, shape any, dtype *ctypes.Type) (*View, error) {
	return New(ptr, shape, dtype, ColMajor)
}

func (v *View) Base() unsafe.Pointer {
	return v.base
}

func (v *View) DType() *ctypes.Type {
	return v.dtype
}

func (v *View) ElemSize() int {
	return v.elemSize
}

func (v *View) NDim() int {
	return len(v.shape)
}

// Shape returns a copy of the extents.
func (v *View) Shape() []int {
	return append([]int(nil), v.shape...)
}

// Strides returns a copy of the byte strides.
func (v *View) Strides() []int {
	return append([]int(nil), v.strides...)
}

// Len is the total element count.
func (v *View) Len() int {
	n := 1
	for _, d := range v.shape {
		n *= d
	}
	return n
}

// CContiguous reports whether elements are dense in row-major order.
// Dimensions with extent 0 or 1 impose no constraint, so degenerate
// views can be contiguous in both orders at once.
func (v *View) CContiguous() bool {
	return v.cContig
}

// FContiguous reports whether elements are dense in column-major order.
func (v *View) FContiguous() bool {
	return v.fContig
}

func normalizeShape(shape any) ([]int, error) {
	switch s := shape.(type) {
	case int:
		if s < 0 {
			return nil, errors.InvalidShape("negative extent %d", s)
		}
		return []int{s}, nil
	case []int:
		dims := make([]int, len(s))
		for d, n := range s {
			if n < 0 {
				return nil, errors.InvalidShape("negative extent %d in dimension %d", n, d)
			}
			dims[d] = n
		}
		return dims, nil
	case nil:
		return nil, errors.InvalidShape("shape is required")
	default:
		return nil, errors.InvalidShape("shape must be int or []int, got %T", shape)
	}
}

func scalarSize(t *ctypes.Type) int {
	if t.Kind == ctypes.KindPointer {
		return int(unsafe.Sizeof(uintptr(0)))
	}
	return t.Kind.Width()
}

func stridesFor(shape []int, elemSize int, order Order) []int {
	strides := make([]int, len(shape))
	if order == ColMajor {
		acc := elemSize
		for d := 0; d < len(shape); d++ {
			strides[d] = acc
			acc *= shape[d]
		}
		return strides
	}
	acc := elemSize
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = acc
		acc *= shape[d]
	}
	return strides
}

// contiguity applies the usual dense-layout test: dimensions of extent
// 0 or 1 are skipped, and a view with no elements is contiguous in both
// orders.
func contiguity(shape, strides []int, elemSize int) (cc, fc bool) {
	for _, n := range shape {
		if n == 0 {
			return true, true
		}
	}

	cc, fc = true, true
	acc := elemSize
	for d := len(shape) - 1; d >= 0; d-- {
		if shape[d] > 1 {
			if strides[d] != acc {
				cc = false
			}
			acc *= shape[d]
		}
	}
	acc = elemSize
	for d := 0; d < len(shape); d++ {
		if shape[d] > 1 {
			if strides[d] != acc {
				fc = false
			}
			acc *= shape[d]
		}
	}
	return cc, fc
}

func mulChecked(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	return product, product/a == b
}
