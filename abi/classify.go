package abi

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/errors"
)

// Classification limits of the SysV AMD64 table.
const (
	eightbyte   = 8
	memoryLimit = 16
)

// Classifier rewrites logical signatures into wrapper signatures for one
// target. It carries no per-call state and is safe for concurrent use.
type Classifier struct {
	calc   *ctypes.Calculator
	target Target
}

// NewClassifier returns a classifier for the target. Only the
// x86_64-linux-gnu table is implemented; other triples are rejected
// rather than approximated.
func NewClassifier(target Target) (*Classifier, error) {
	if target.Triple != AMD64SysV().Triple {
		return nil, errors.New(errors.PhaseClassify, errors.KindUnsupportedType).
			Value(target.Triple).
			Detail("no classification table for target %q", target.Triple).
			Build()
	}
	return newClassifier(target), nil
}

func newClassifier(target Target) *Classifier {
	return &Classifier{
		calc:   ctypes.NewCalculator(target),
		target: target,
	}
}

func (c *Classifier) Target() Target {
	return c.target
}

// Classify rewrites a logical signature into its physical wrapper
// signature and the plan mapping logical arguments onto wrapper slots.
// Classification is pure: equal inputs produce equal outputs, and the
// same Classifier may be used from many goroutines.
func (c *Classifier) Classify(sig Signature) (*WrapperSignature, *MarshallingPlan, error) {
	wrapper := &WrapperSignature{}
	plan := &MarshallingPlan{
		Args: make([]ArgPlan, len(sig.Args)),
		Ret:  RetPlan{PointerSlot: -1},
	}

	for i, arg := range sig.Args {
		path := []string{"arg", strconv.Itoa(i)}
		if err := validateLogical(arg, path); err != nil {
			return nil, nil, err
		}

		if !arg.IsAggregate() {
			plan.Args[i] = ArgPlan{Slots: []int{len(wrapper.Args)}}
			wrapper.Args = append(wrapper.Args, arg)
			continue
		}

		slots, mem, err := c.classifyAggregate(arg, path)
		if err != nil {
			return nil, nil, err
		}
		if mem {
			plan.Args[i] = ArgPlan{Slots: []int{len(wrapper.Args)}, ByPointer: true}
			wrapper.Args = append(wrapper.Args, ctypes.PointerTo(physicalType(arg)))
			continue
		}

		indices := make([]int, len(slots))
		for j := range slots {
			indices[j] = len(wrapper.Args) + j
		}
		plan.Args[i] = ArgPlan{Slots: indices}
		wrapper.Args = append(wrapper.Args, slots...)
	}

	if err := c.classifyResult(sig.Ret, wrapper, plan); err != nil {
		return nil, nil, err
	}

	Logger().Debug("classified signature",
		zap.String("logical", sig.String()),
		zap.String("wrapper", wrapper.String()),
		zap.Bool("ret_indirect", wrapper.RetIndirect))
	return wrapper, plan, nil
}

func (c *Classifier) classifyResult(ret *ctypes.Type, wrapper *WrapperSignature, plan *MarshallingPlan) error {
	if ret == nil || ret.Kind == ctypes.KindVoid {
		wrapper.Ret = ctypes.Void
		return nil
	}

	path := []string{"ret"}
	if err := validateLogical(ret, path); err != nil {
		return err
	}

	if !ret.IsAggregate() {
		wrapper.Ret = ret
		plan.Ret.Slots = 1
		return nil
	}

	slots, mem, err := c.classifyAggregate(ret, path)
	if err != nil {
		return err
	}
	if mem {
		// The result escapes to caller-owned storage reached through a
		// pointer appended after all argument slots.
		wrapper.Ret = ctypes.Void
		wrapper.RetIndirect = true
		plan.Ret = RetPlan{Indirect: true, PointerSlot: len(wrapper.Args)}
		wrapper.Args = append(wrapper.Args, ctypes.PointerTo(physicalType(ret)))
		return nil
	}

	switch len(slots) {
	case 0:
		wrapper.Ret = ctypes.Void
	case 1:
		wrapper.Ret = slots[0]
		plan.Ret.Slots = 1
	default:
		wrapper.Ret = ctypes.StructOf(slots...)
		plan.Ret.Slots = len(slots)
	}
	return nil
}

// classifyAggregate reduces an aggregate to its eightbyte slot types, or
// reports that it escapes to memory.
func (c *Classifier) classifyAggregate(t *ctypes.Type, path []string) (slots []*ctypes.Type, mem bool, err error) {
	layout, err := c.calc.Calculate(t)
	if err != nil {
		return nil, false, prefixPath(err, path)
	}
	if layout.Size > memoryLimit {
		return nil, true, nil
	}

	var leaves []leaf
	if err := c.flatten(t, 0, &leaves); err != nil {
		return nil, false, prefixPath(err, path)
	}
	return c.window(leaves, layout.Size), false, nil
}

// TypeClass is the eightbyte classification of a single type, exposed
// for inspection tooling.
type TypeClass struct {
	Classes []Class
	Slots   []*ctypes.Type
	Size    int
	Memory  bool
}

// ClassifyType classifies one logical type in argument position.
func (c *Classifier) ClassifyType(t *ctypes.Type) (TypeClass, error) {
	if err := validateLogical(t, nil); err != nil {
		return TypeClass{}, err
	}
	layout, err := c.calc.Calculate(t)
	if err != nil {
		return TypeClass{}, err
	}

	if !t.IsAggregate() {
		return TypeClass{
			Classes: []Class{slotClass(t)},
			Slots:   []*ctypes.Type{t},
			Size:    layout.Size,
		}, nil
	}

	slots, mem, err := c.classifyAggregate(t, nil)
	if err != nil {
		return TypeClass{}, err
	}
	if mem {
		return TypeClass{
			Classes: []Class{ClassMemory},
			Size:    layout.Size,
			Memory:  true,
		}, nil
	}

	classes := make([]Class, len(slots))
	for i, s := range slots {
		classes[i] = slotClass(s)
	}
	return TypeClass{Classes: classes, Slots: slots, Size: layout.Size}, nil
}

// leaf is one scalar occupying [off, off+width) of the flattened
// aggregate, with bools already rewritten to int8.
type leaf struct {
	typ *ctypes.Type
	off int
}

func (c *Classifier) flatten(t *ctypes.Type, base int, out *[]leaf) error {
	switch t.Kind {
	case ctypes.KindBool:
		*out = append(*out, leaf{typ: ctypes.Int8, off: base})
		return nil
	case ctypes.KindStruct:
		layout, err := c.calc.Calculate(t)
		if err != nil {
			return err
		}
		for i, f := range t.Fields {
			if err := c.flatten(f.Type, base+layout.FieldOffsets[i], out); err != nil {
				return err
			}
		}
		return nil
	case ctypes.KindArray:
		elemLayout, err := c.calc.Calculate(t.Elem)
		if err != nil {
			return err
		}
		for j := 0; j < int(t.Len); j++ {
			if err := c.flatten(t.Elem, base+j*elemLayout.Size, out); err != nil {
				return err
			}
		}
		return nil
	default:
		*out = append(*out, leaf{typ: t, off: base})
		return nil
	}
}

// window groups leaves into eightbyte buckets and reduces each bucket to
// a slot type. Single-leaf windows keep the leaf's exact type; all-float
// windows pack into a vector; everything else merges into an integer
// spanning the occupied bytes, widened to a machine width when one fits.
func (c *Classifier) window(leaves []leaf, size int) []*ctypes.Type {
	if size == 0 || len(leaves) == 0 {
		return nil
	}

	nwin := (size + eightbyte - 1) / eightbyte
	buckets := make([][]leaf, nwin)
	for _, l := range leaves {
		w := l.off / eightbyte
		buckets[w] = append(buckets[w], l)
	}

	var slots []*ctypes.Type
	for _, bucket := range buckets {
		switch len(bucket) {
		case 0:
			// padding-only window carries no data
		case 1:
			slots = append(slots, bucket[0].typ)
		default:
			slots = append(slots, c.mergeWindow(bucket))
		}
	}
	return slots
}

func (c *Classifier) mergeWindow(bucket []leaf) *ctypes.Type {
	allFloat32 := true
	for _, l := range bucket {
		if l.typ.Kind != ctypes.KindFloat32 {
			allFloat32 = false
			break
		}
	}
	if allFloat32 {
		return ctypes.VectorOf(ctypes.Float32, uint32(len(bucket)))
	}

	lo, hi := bucket[0].off, 0
	for _, l := range bucket {
		if l.off < lo {
			lo = l.off
		}
		if end := l.off + c.leafWidth(l.typ); end > hi {
			hi = end
		}
	}
	// The merged integer covers the span between the lowest and highest
	// occupied byte, holes included.
	span := hi - lo
	if t := ctypes.IntOfWidth(span); t != nil {
		return t
	}
	return ctypes.PackedIntOf(uint32(span) * 8)
}

func (c *Classifier) leafWidth(t *ctypes.Type) int {
	if t.Kind == ctypes.KindPointer {
		return c.target.PtrSize
	}
	return t.Kind.Width()
}

func slotClass(t *ctypes.Type) Class {
	if t.IsFloat() || t.Kind == ctypes.KindVector {
		return ClassFloat
	}
	return ClassInteger
}

// physicalType rewrites bool to int8 throughout an aggregate, returning
// t unchanged when no bool occurs anywhere inside it.
func physicalType(t *ctypes.Type) *ctypes.Type {
	switch t.Kind {
	case ctypes.KindBool:
		return ctypes.Int8
	case ctypes.KindStruct:
		changed := false
		fields := make([]ctypes.Field, len(t.Fields))
		for i, f := range t.Fields {
			ft := physicalType(f.Type)
			if ft != f.Type {
				changed = true
			}
			fields[i] = ctypes.Field{Name: f.Name, Type: ft}
		}
		if !changed {
			return t
		}
		return ctypes.RecordOf(fields...)
	case ctypes.KindArray:
		elem := physicalType(t.Elem)
		if elem == t.Elem {
			return t
		}
		return ctypes.ArrayOf(elem, t.Len)
	default:
		return t
	}
}

func validateLogical(t *ctypes.Type, path []string) error {
	if t == nil {
		return errors.UnsupportedType(errors.PhaseClassify, path, "<nil>")
	}
	switch t.Kind {
	case ctypes.KindVoid:
		return errors.UnsupportedType(errors.PhaseClassify, path, "void")
	case ctypes.KindVector, ctypes.KindPackedInt:
		// classification outputs, not logical inputs
		return errors.UnsupportedType(errors.PhaseClassify, path, t.String())
	case ctypes.KindStruct:
		for i, f := range t.Fields {
			if err := validateLogical(f.Type, append(path, argFieldLabel(f, i))); err != nil {
				return err
			}
		}
		return nil
	case ctypes.KindArray:
		return validateLogical(t.Elem, append(path, "[]"))
	default:
		return nil
	}
}

func argFieldLabel(f ctypes.Field, i int) string {
	if f.Name != "" {
		return f.Name
	}
	return strconv.Itoa(i)
}

func prefixPath(err error, prefix []string) error {
	e, ok := err.(*errors.Error)
	if !ok || len(prefix) == 0 {
		return err
	}
	joined := make([]string, 0, len(prefix)+len(e.Path))
	joined = append(joined, prefix...)
	joined = append(joined, e.Path...)
	clone := *e
	clone.Path = joined
	return &clone
}
