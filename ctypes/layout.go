package ctypes

import (
	"strconv"
	"sync"

	"fortio.org/safecast"

	"github.com/callsite/cabi/errors"
)

// Layout is the computed C layout of a type: total size, alignment and,
// for structs, per-field byte offsets.
type Layout struct {
	FieldOffsets []int
	Size         int
	Align        int
}

// Calculator computes and caches layouts for one target. Natural
// alignment, no packing. Safe for concurrent use.
type Calculator struct {
	mu     sync.Mutex
	cache  map[*Type]Layout
	target Target
}

func NewCalculator(target Target) *Calculator {
	return &Calculator{
		cache:  make(map[*Type]Layout),
		target: target,
	}
}

func (c *Calculator) Target() Target {
	return c.target
}

func (c *Calculator) Calculate(t *Type) (Layout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculate(t, nil)
}

func (c *Calculator) calculate(t *Type, path []string) (Layout, error) {
	if t == nil {
		return Layout{}, errors.UnsupportedType(errors.PhaseLayout, path, "<nil>")
	}

	switch t.Kind {
	case KindBool, KindInt8, KindUint8:
		return Layout{Size: 1, Align: 1}, nil
	case KindInt16, KindUint16:
		return Layout{Size: 2, Align: 2}, nil
	case KindInt32, KindUint32, KindFloat32:
		return Layout{Size: 4, Align: 4}, nil
	case KindInt64, KindUint64, KindFloat64:
		return Layout{Size: 8, Align: 8}, nil
	case KindPointer:
		return Layout{Size: c.target.PtrSize, Align: c.target.PtrAlign}, nil
	case KindPackedInt:
		return Layout{Size: int(t.Bits+7) / 8, Align: 1}, nil
	case KindVector:
		return c.calculateVector(t, path)
	case KindStruct:
		return c.calculateStruct(t, path)
	case KindArray:
		return c.calculateArray(t, path)
	default:
		return Layout{}, errors.UnsupportedType(errors.PhaseLayout, path, t.Kind.String())
	}
}

func (c *Calculator) calculateStruct(t *Type, path []string) (Layout, error) {
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	if len(t.Fields) == 0 {
		info := Layout{Size: 0, Align: 1}
		c.cache[t] = info
		return info, nil
	}

	offsets := make([]int, len(t.Fields))
	maxAlign := 1
	offset := 0

	for i, field := range t.Fields {
		fieldLayout, err := c.calculate(field.Type, append(path, fieldLabel(field, i)))
		if err != nil {
			return Layout{}, err
		}

		offset = alignTo(offset, fieldLayout.Align)
		offsets[i] = offset

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		next, ok := addChecked(offset, fieldLayout.Size)
		if !ok {
			return Layout{}, errors.Overflow(errors.PhaseLayout, path, "struct size exceeds address space")
		}
		offset = next
	}

	info := Layout{
		Size:         alignTo(offset, maxAlign),
		Align:        maxAlign,
		FieldOffsets: offsets,
	}
	c.cache[t] = info
	return info, nil
}

func (c *Calculator) calculateArray(t *Type, path []string) (Layout, error) {
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	elemLayout, err := c.calculate(t.Elem, append(path, "[]"))
	if err != nil {
		return Layout{}, err
	}

	n, convErr := safecast.Conv[int](t.Len)
	if convErr != nil {
		return Layout{}, errors.Overflow(errors.PhaseLayout, path, "array length out of range")
	}

	stride := alignTo(elemLayout.Size, elemLayout.Align)
	size, ok := mulChecked(stride, n)
	if !ok {
		return Layout{}, errors.Overflow(errors.PhaseLayout, path, "array size exceeds address space")
	}

	info := Layout{Size: size, Align: elemLayout.Align}
	c.cache[t] = info
	return info, nil
}

func (c *Calculator) calculateVector(t *Type, path []string) (Layout, error) {
	elemLayout, err := c.calculate(t.Elem, append(path, "[]"))
	if err != nil {
		return Layout{}, err
	}

	n, convErr := safecast.Conv[int](t.Len)
	if convErr != nil {
		return Layout{}, errors.Overflow(errors.PhaseLayout, path, "vector length out of range")
	}

	size, ok := mulChecked(elemLayout.Size, n)
	if !ok {
		return Layout{}, errors.Overflow(errors.PhaseLayout, path, "vector size exceeds address space")
	}

	// Vectors align to their full width like SSE units do.
	align := elemLayout.Align
	if size <= 16 && isPow2(size) {
		align = size
	}
	return Layout{Size: size, Align: align}, nil
}

func fieldLabel(f Field, i int) string {
	if f.Name != "" {
		return f.Name
	}
	return strconv.Itoa(i)
}

func alignTo(offset, align int) int {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

func addChecked(a, b int) (int, bool) {
	sum := a + b
	return sum, sum >= a
}

func mulChecked(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	return product, product/a == b
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
