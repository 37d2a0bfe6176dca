package ctypes

import (
	"strconv"
	"strings"
)

// Type describes a C data type. Values are built once via the package
// constructors and never mutated afterwards, so a *Type may be shared
// freely across goroutines.
type Type struct {
	Elem   *Type   // Pointer pointee (nil for void*), Array/Vector element
	Fields []Field // Struct members, in declaration order
	Len    uint32  // Array/Vector element count
	Bits   uint32  // PackedInt width in bits
	Kind   Kind
}

// Field is a single struct member. Name may be empty for positional
// aggregates; layout does not depend on it.
type Field struct {
	Type *Type
	Name string
}

// Primitive singletons. Always prefer these over hand-built values so
// that pointer comparison works as a fast path.
var (
	Void    = &Type{Kind: KindVoid}
	Bool    = &Type{Kind: KindBool}
	Int8    = &Type{Kind: KindInt8}
	Int16   = &Type{Kind: KindInt16}
	Int32   = &Type{Kind: KindInt32}
	Int64   = &Type{Kind: KindInt64}
	Uint8   = &Type{Kind: KindUint8}
	Uint16  = &Type{Kind: KindUint16}
	Uint32  = &Type{Kind: KindUint32}
	Uint64  = &Type{Kind: KindUint64}
	Float32 = &Type{Kind: KindFloat32}
	Float64 = &Type{Kind: KindFloat64}

	// VoidPtr is the opaque pointer type, spelled "void*".
	VoidPtr = &Type{Kind: KindPointer}
)

// Primitive returns the singleton for a primitive kind, or nil if the
// kind is not primitive.
func Primitive(k Kind) *Type {
	switch k {
	case KindVoid:
		return Void
	case KindBool:
		return Bool
	case KindInt8:
		return Int8
	case KindInt16:
		return Int16
	case KindInt32:
		return Int32
	case KindInt64:
		return Int64
	case KindUint8:
		return Uint8
	case KindUint16:
		return Uint16
	case KindUint32:
		return Uint32
	case KindUint64:
		return Uint64
	case KindFloat32:
		return Float32
	case KindFloat64:
		return Float64
	default:
		return nil
	}
}

// IntOfWidth returns the signed integer type of the given byte width,
// or nil when no machine integer has that width.
func IntOfWidth(bytes int) *Type {
	switch bytes {
	case 1:
		return Int8
	case 2:
		return Int16
	case 4:
		return Int32
	case 8:
		return Int64
	default:
		return nil
	}
}

// PointerTo returns a pointer type. A nil elem yields the opaque void*.
func PointerTo(elem *Type) *Type {
	if elem == nil {
		return VoidPtr
	}
	return &Type{Kind: KindPointer, Elem: elem}
}

// StructOf returns a struct of unnamed fields in the given order.
func StructOf(elems ...*Type) *Type {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Type: e}
	}
	return &Type{Kind: KindStruct, Fields: fields}
}

// RecordOf returns a struct of named fields in the given order.
func RecordOf(fields ...Field) *Type {
	return &Type{Kind: KindStruct, Fields: fields}
}

// ArrayOf returns a fixed-length array type.
func ArrayOf(elem *Type, n uint32) *Type {
	return &Type{Kind: KindArray, Elem: elem, Len: n}
}

// VectorOf returns a packed SIMD vector of float lanes. Vectors are
// produced by classification and are not valid logical signature types.
func VectorOf(elem *Type, lanes uint32) *Type {
	return &Type{Kind: KindVector, Elem: elem, Len: lanes}
}

// PackedIntOf returns an integer of a non-standard bit width, e.g. int24.
// Packed ints are produced by classification and are not valid logical
// signature types.
func PackedIntOf(bits uint32) *Type {
	return &Type{Kind: KindPackedInt, Bits: bits}
}

func (t *Type) IsPrimitive() bool {
	return t.Kind.IsPrimitive()
}

func (t *Type) IsInteger() bool {
	return t.Kind.IsInteger()
}

func (t *Type) IsFloat() bool {
	return t.Kind.IsFloat()
}

func (t *Type) IsPointer() bool {
	return t.Kind == KindPointer
}

func (t *Type) IsAggregate() bool {
	return t.Kind == KindStruct || t.Kind == KindArray
}

// IsScalar reports whether t is a sized scalar: a primitive other than
// void, or a pointer. Only scalars may serve as view element types.
func (t *Type) IsScalar() bool {
	if t.Kind == KindPointer {
		return true
	}
	return t.Kind.IsPrimitive() && t.Kind != KindVoid
}

// Opaque reports whether t is the element-less void* pointer.
func (t *Type) Opaque() bool {
	return t.Kind == KindPointer && t.Elem == nil
}

// String renders the C-style spelling: "int32", "float64*", "void*",
// "int8[8]", "{int32, int8[8]}", "float32x2", "int24".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindPointer:
		if t.Elem == nil {
			return "void*"
		}
		return t.Elem.String() + "*"
	case KindStruct:
		var b strings.Builder
		b.WriteByte('{')
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			if f.Name != "" {
				b.WriteString(f.Name)
				b.WriteString(": ")
			}
			b.WriteString(f.Type.String())
		}
		b.WriteByte('}')
		return b.String()
	case KindArray:
		return t.Elem.String() + "[" + strconv.FormatUint(uint64(t.Len), 10) + "]"
	case KindVector:
		return t.Elem.String() + "x" + strconv.FormatUint(uint64(t.Len), 10)
	case KindPackedInt:
		return "int" + strconv.FormatUint(uint64(t.Bits), 10)
	default:
		return t.Kind.String()
	}
}

// Equal reports structural equality. Field names are ignored; two
// structs with the same field types in the same order are equal.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindPointer:
		if (t.Elem == nil) != (o.Elem == nil) {
			return false
		}
		return t.Elem == nil || t.Elem.Equal(o.Elem)
	case KindStruct:
		if len(t.Fields) != len(o.Fields) {
			return false
		}
		for i := range t.Fields {
			if !t.Fields[i].Type.Equal(o.Fields[i].Type) {
				return false
			}
		}
		return true
	case KindArray, KindVector:
		return t.Len == o.Len && t.Elem.Equal(o.Elem)
	case KindPackedInt:
		return t.Bits == o.Bits
	default:
		return true
	}
}

// SameRepresentation reports whether two scalar types share kind and
// width, i.e. reading memory through either yields identical bits.
// Pointers all share one representation regardless of pointee.
func (t *Type) SameRepresentation(o *Type) bool {
	if t == nil || o == nil {
		return false
	}
	if t.Kind == KindPointer && o.Kind == KindPointer {
		return true
	}
	return t.Kind == o.Kind
}
