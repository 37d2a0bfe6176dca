package abi

import (
	"strings"

	"github.com/callsite/cabi/ctypes"
)

// Target selects the classification table. Aliased from ctypes so layout
// and classification always agree on pointer properties.
type Target = ctypes.Target

// AMD64SysV returns the x86_64-linux-gnu target.
func AMD64SysV() Target {
	return ctypes.AMD64SysV()
}

// Signature is a logical C function signature: the types the caller
// thinks in, before any calling-convention rewriting.
type Signature struct {
	Args []*ctypes.Type
	Ret  *ctypes.Type
}

// NewSignature builds a signature. A nil ret means void.
func NewSignature(ret *ctypes.Type, args ...*ctypes.Type) Signature {
	if ret == nil {
		ret = ctypes.Void
	}
	return Signature{Ret: ret, Args: args}
}

func (s Signature) String() string {
	return formatSignature(s.Ret, s.Args)
}

// WrapperSignature is the physical signature after classification. Every
// argument is a scalar slot (primitive, pointer, vector or packed int) or
// a pointer to an aggregate that escaped to memory. When RetIndirect is
// set the logical result is written through a trailing pointer argument
// and Ret is void.
type WrapperSignature struct {
	Args        []*ctypes.Type
	Ret         *ctypes.Type
	RetIndirect bool
}

func (w *WrapperSignature) String() string {
	return formatSignature(w.Ret, w.Args)
}

// ArgPlan maps one logical argument onto wrapper slots.
type ArgPlan struct {
	// Slots are indices into WrapperSignature.Args carrying this
	// argument's data, in ascending memory order.
	Slots []int
	// ByPointer marks a MEMORY-class argument passed as a single
	// pointer to caller-owned storage.
	ByPointer bool
}

// RetPlan describes how the logical result travels.
type RetPlan struct {
	// PointerSlot is the wrapper argument index of the injected output
	// pointer, or -1 when the result is returned directly.
	PointerSlot int
	// Slots is the number of eightbytes in a direct result (0 for void).
	Slots    int
	Indirect bool
}

// MarshallingPlan connects a logical signature to its wrapper: one entry
// per logical argument plus the result routing.
type MarshallingPlan struct {
	Args []ArgPlan
	Ret  RetPlan
}

func formatSignature(ret *ctypes.Type, args []*ctypes.Type) string {
	var b strings.Builder
	if ret == nil {
		b.WriteString("void")
	} else {
		b.WriteString(ret.String())
	}
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}
