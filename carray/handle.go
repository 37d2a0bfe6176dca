package carray

import (
	"reflect"
	"unsafe"

	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/errors"
)

// Handle pairs a raw address with what is statically known about its
// element type. The memory stays owned by the caller; a Handle never
// allocates, frees or retains anything.
type Handle struct {
	ptr  unsafe.Pointer
	elem *ctypes.Type // nil when only the address is known
}

// TypedPtr builds a handle whose element type is already known.
func TypedPtr(p unsafe.Pointer, elem *ctypes.Type) Handle {
	return Handle{ptr: p, elem: elem}
}

// Opaque builds a handle carrying no element type. Views over it must
// supply an explicit dtype.
func Opaque(p unsafe.Pointer) Handle {
	return Handle{ptr: p}
}

func (h Handle) Ptr() unsafe.Pointer {
	return h.ptr
}

// Elem returns the static element type, or nil for opaque handles.
func (h Handle) Elem() *ctypes.Type {
	return h.elem
}

// HandleOf derives a handle from a Go value. Accepted inputs are an
// existing Handle, an unsafe.Pointer (opaque), or a Go pointer to a
// scalar (*float64, *int32, *unsafe.Pointer, ...). Plain integers and
// uintptr carry no pointer provenance and are rejected with
// invalid_pointer; that failure is deliberately distinct from a dtype
// mismatch.
func HandleOf(v any) (Handle, error) {
	switch p := v.(type) {
	case Handle:
		return p, nil
	case unsafe.Pointer:
		return Handle{ptr: p}, nil
	case nil:
		return Handle{}, errors.InvalidPointer("nil")
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return Handle{}, errors.InvalidPointer(rv.Type().String())
	}
	if rv.IsNil() {
		return Handle{}, errors.InvalidPointer("nil " + rv.Type().String())
	}

	elem, ok := scalarTypeFor(rv.Type().Elem())
	if !ok {
		return Handle{}, errors.New(errors.PhaseView, errors.KindUnsupportedType).
			Value(rv.Type().String()).
			Detail("no scalar element type for %s", rv.Type().String()).
			Build()
	}
	return Handle{ptr: unsafe.Pointer(rv.Pointer()), elem: elem}, nil
}

// scalarTypeFor maps a Go element type onto the ctypes scalar reading
// and writing it reproduces bit for bit.
func scalarTypeFor(t reflect.Type) (*ctypes.Type, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return ctypes.Bool, true
	case reflect.Int8:
		return ctypes.Int8, true
	case reflect.Int16:
		return ctypes.Int16, true
	case reflect.Int32:
		return ctypes.Int32, true
	case reflect.Int64, reflect.Int:
		return ctypes.Int64, true
	case reflect.Uint8:
		return ctypes.Uint8, true
	case reflect.Uint16:
		return ctypes.Uint16, true
	case reflect.Uint32:
		return ctypes.Uint32, true
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return ctypes.Uint64, true
	case reflect.Float32:
		return ctypes.Float32, true
	case reflect.Float64:
		return ctypes.Float64, true
	case reflect.UnsafePointer:
		return ctypes.VoidPtr, true
	case reflect.Pointer:
		if inner, ok := scalarTypeFor(t.Elem()); ok {
			return ctypes.PointerTo(inner), true
		}
		return ctypes.VoidPtr, true
	default:
		return nil, false
	}
}
