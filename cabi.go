package cabi

import (
	"github.com/callsite/cabi/abi"
)

// Entry is a bound native entry point: a concrete address paired with
// the wrapper signature calls through it must follow.
type Entry interface {
	// Addr is the code address of the entry point.
	Addr() uintptr
	// Wrapper describes the physical signature at Addr.
	Wrapper() *abi.WrapperSignature
}

// Binder turns classified signatures into callable entries. The FFI or
// JIT layer embedding this library implements Binder; the library
// itself only produces the wrapper signatures handed to it.
type Binder interface {
	Bind(wrapper *abi.WrapperSignature, addr uintptr) (Entry, error)
}
