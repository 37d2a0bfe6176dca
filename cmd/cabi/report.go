package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/callsite/cabi/abi"
	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/sigstr"
)

// sigReport is everything the renderers need for one signature: the
// classification itself plus the per-type eightbyte breakdown.
type sigReport struct {
	src     string
	sig     abi.Signature
	wrapper *abi.WrapperSignature
	plan    *abi.MarshallingPlan
	args    []abi.TypeClass
	ret     *abi.TypeClass // nil for void
	fp      string
}

func buildReport(classifier *abi.Classifier, src string) (*sigReport, error) {
	sig, err := sigstr.ParseSignature(src)
	if err != nil {
		return nil, err
	}
	wrapper, plan, err := classifier.Classify(sig)
	if err != nil {
		return nil, err
	}
	fp, err := abi.Fingerprint(sig)
	if err != nil {
		return nil, err
	}

	r := &sigReport{
		src:     src,
		sig:     sig,
		wrapper: wrapper,
		plan:    plan,
		fp:      hex.EncodeToString(fp[:]),
	}
	for _, arg := range sig.Args {
		tc, err := classifier.ClassifyType(arg)
		if err != nil {
			return nil, err
		}
		r.args = append(r.args, tc)
	}
	if sig.Ret.Kind != ctypes.KindVoid {
		tc, err := classifier.ClassifyType(sig.Ret)
		if err != nil {
			return nil, err
		}
		r.ret = &tc
	}
	return r, nil
}

func classesLabel(tc abi.TypeClass) string {
	names := make([]string, len(tc.Classes))
	for i, c := range tc.Classes {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}

func argRouteLabel(plan abi.ArgPlan) string {
	if plan.ByPointer {
		return fmt.Sprintf("by pointer in slot %d", plan.Slots[0])
	}
	return fmt.Sprintf("slots %v", plan.Slots)
}

func retRouteLabel(r *sigReport) string {
	switch {
	case r.plan.Ret.Indirect:
		return fmt.Sprintf("indirect via output pointer in slot %d", r.plan.Ret.PointerSlot)
	case r.plan.Ret.Slots == 0:
		return "void"
	case r.plan.Ret.Slots == 1:
		return "direct, 1 slot"
	default:
		return fmt.Sprintf("direct, %d slots", r.plan.Ret.Slots)
	}
}
