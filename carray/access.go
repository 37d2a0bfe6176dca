package carray

import (
	"fmt"
	"strconv"
	"unsafe"

	"fortio.org/safecast"

	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/errors"
)

// At reads the element at the given indices, one index per dimension.
func (v *View) At(ix ...int) (any, error) {
	off, err := v.offsetOf(ix)
	if err != nil {
		return nil, err
	}
	return readScalar(unsafe.Add(v.base, off), v.dtype.Kind), nil
}

// Set writes val at the given indices through the viewed memory. val
// must be the Go value matching the dtype (int8 for int8 and so on);
// a plain int is accepted for any integer dtype when it fits.
func (v *View) Set(val any, ix ...int) error {
	off, err := v.offsetOf(ix)
	if err != nil {
		return err
	}
	return writeScalar(unsafe.Add(v.base, off), v.dtype, val)
}

// Index resolves leading dimensions to a lower-rank view sharing the
// same memory. Indexing all dimensions yields a rank-0 view whose At()
// takes no indices. With no arguments the view itself is returned.
func (v *View) Index(ix ...int) (*View, error) {
	if len(ix) == 0 {
		return v, nil
	}
	if len(ix) > len(v.shape) {
		return nil, errors.InvalidShape("%d indices for %d dimensions", len(ix), len(v.shape))
	}
	off := 0
	for d, i := range ix {
		if i < 0 || i >= v.shape[d] {
			return nil, errors.OutOfBounds(errors.PhaseView, dimPath(d), i, v.shape[d])
		}
		off += i * v.strides[d]
	}
	sub := &View{
		base:     unsafe.Add(v.base, off),
		dtype:    v.dtype,
		shape:    append([]int(nil), v.shape[len(ix):]...),
		strides:  append([]int(nil), v.strides[len(ix):]...),
		elemSize: v.elemSize,
	}
	sub.cContig, sub.fContig = contiguity(sub.shape, sub.strides, sub.elemSize)
	return sub, nil
}

// Slice restricts one dimension to [start:stop:step] with Python
// semantics: negative bounds count from the end, out-of-range bounds
// clamp instead of failing, and a negative step walks backwards. The
// result shares memory with v.
func (v *View) Slice(dim, start, stop, step int) (*View, error) {
	if dim < 0 || dim >= len(v.shape) {
		return nil, errors.OutOfBounds(errors.PhaseView, []string{"dim"}, dim, len(v.shape))
	}
	if step == 0 {
		return nil, errors.InvalidShape("slice step cannot be zero")
	}

	n := v.shape[dim]
	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	if start < 0 {
		start += n
		if start < lower {
			start = lower
		}
	} else if start > upper {
		start = upper
	}
	if stop < 0 {
		stop += n
		if stop < lower {
			stop = lower
		}
	} else if stop > upper {
		stop = upper
	}

	var length int
	if step < 0 {
		if stop < start {
			length = (start-stop-1)/(-step) + 1
		}
	} else {
		if start < stop {
			length = (stop-start-1)/step + 1
		}
	}

	out := &View{
		base:     v.base,
		dtype:    v.dtype,
		shape:    append([]int(nil), v.shape...),
		strides:  append([]int(nil), v.strides...),
		elemSize: v.elemSize,
	}
	out.shape[dim] = length
	out.strides[dim] = v.strides[dim] * step
	if length > 0 {
		out.base = unsafe.Add(v.base, start*v.strides[dim])
	}
	out.cContig, out.fContig = contiguity(out.shape, out.strides, out.elemSize)
	return out, nil
}

func (v *View) offsetOf(ix []int) (int, error) {
	if len(ix) != len(v.shape) {
		return 0, errors.InvalidShape("expected %d indices, got %d", len(v.shape), len(ix))
	}
	off := 0
	for d, i := range ix {
		if i < 0 || i >= v.shape[d] {
			return 0, errors.OutOfBounds(errors.PhaseView, dimPath(d), i, v.shape[d])
		}
		off += i * v.strides[d]
	}
	return off, nil
}

func dimPath(d int) []string {
	return []string{"dim", strconv.Itoa(d)}
}

func readScalar(p unsafe.Pointer, k ctypes.Kind) any {
	switch k {
	case ctypes.KindBool:
		return *(*byte)(p) != 0
	case ctypes.KindInt8:
		return *(*int8)(p)
	case ctypes.KindInt16:
		return *(*int16)(p)
	case ctypes.KindInt32:
		return *(*int32)(p)
	case ctypes.KindInt64:
		return *(*int64)(p)
	case ctypes.KindUint8:
		return *(*uint8)(p)
	case ctypes.KindUint16:
		return *(*uint16)(p)
	case ctypes.KindUint32:
		return *(*uint32)(p)
	case ctypes.KindUint64:
		return *(*uint64)(p)
	case ctypes.KindFloat32:
		return *(*float32)(p)
	case ctypes.KindFloat64:
		return *(*float64)(p)
	case ctypes.KindPointer:
		return *(*unsafe.Pointer)(p)
	default:
		panic(fmt.Sprintf("carray: non-scalar dtype kind %s", k))
	}
}

func writeScalar(p unsafe.Pointer, dtype *ctypes.Type, val any) error {
	if dtype.Kind.IsInteger() {
		if i, ok := val.(int); ok {
			return writeInt(p, dtype, i)
		}
	}
	switch dtype.Kind {
	case ctypes.KindBool:
		b, ok := val.(bool)
		if !ok {
			return storeMismatch(dtype, val)
		}
		var raw byte
		if b {
			raw = 1
		}
		*(*byte)(p) = raw
	case ctypes.KindInt8:
		x, ok := val.(int8)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*int8)(p) = x
	case ctypes.KindInt16:
		x, ok := val.(int16)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*int16)(p) = x
	case ctypes.KindInt32:
		x, ok := val.(int32)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*int32)(p) = x
	case ctypes.KindInt64:
		x, ok := val.(int64)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*int64)(p) = x
	case ctypes.KindUint8:
		x, ok := val.(uint8)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*uint8)(p) = x
	case ctypes.KindUint16:
		x, ok := val.(uint16)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*uint16)(p) = x
	case ctypes.KindUint32:
		x, ok := val.(uint32)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*uint32)(p) = x
	case ctypes.KindUint64:
		x, ok := val.(uint64)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*uint64)(p) = x
	case ctypes.KindFloat32:
		x, ok := val.(float32)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*float32)(p) = x
	case ctypes.KindFloat64:
		x, ok := val.(float64)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*float64)(p) = x
	case ctypes.KindPointer:
		x, ok := val.(unsafe.Pointer)
		if !ok {
			return storeMismatch(dtype, val)
		}
		*(*unsafe.Pointer)(p) = x
	default:
		panic(fmt.Sprintf("carray: non-scalar dtype kind %s", dtype.Kind))
	}
	return nil
}

// writeInt narrows a Go int into the view's integer dtype, failing on
// values outside the dtype's range.
func writeInt(p unsafe.Pointer, dtype *ctypes.Type, val int) error {
	var err error
	switch dtype.Kind {
	case ctypes.KindInt8:
		var x int8
		if x, err = safecast.Conv[int8](val); err == nil {
			*(*int8)(p) = x
		}
	case ctypes.KindInt16:
		var x int16
		if x, err = safecast.Conv[int16](val); err == nil {
			*(*int16)(p) = x
		}
	case ctypes.KindInt32:
		var x int32
		if x, err = safecast.Conv[int32](val); err == nil {
			*(*int32)(p) = x
		}
	case ctypes.KindInt64:
		*(*int64)(p) = int64(val)
	case ctypes.KindUint8:
		var x uint8
		if x, err = safecast.Conv[uint8](val); err == nil {
			*(*uint8)(p) = x
		}
	case ctypes.KindUint16:
		var x uint16
		if x, err = safecast.Conv[uint16](val); err == nil {
			*(*uint16)(p) = x
		}
	case ctypes.KindUint32:
		var x uint32
		if x, err = safecast.Conv[uint32](val); err == nil {
			*(*uint32)(p) = x
		}
	case ctypes.KindUint64:
		var x uint64
		if x, err = safecast.Conv[uint64](val); err == nil {
			*(*uint64)(p) = x
		}
	}
	if err != nil {
		return errors.Overflow(errors.PhaseView, nil,
			fmt.Sprintf("value %d does not fit %s", val, dtype.String()))
	}
	return nil
}

func storeMismatch(dtype *ctypes.Type, val any) error {
	return errors.New(errors.PhaseView, errors.KindDtypeMismatch).
		DType(dtype.String()).
		Value(val).
		Detail("cannot store %T into %s element", val, dtype.String()).
		Build()
}
