package ctypes

import (
	"github.com/callsite/cabi/errors"
)

// Target describes the ABI target triple and its pointer properties.
//
// Only x86_64-linux-gnu is implemented; other triples get their own
// classification tables and must not fall through to this one.
type Target struct {
	Triple   string // e.g. "x86_64-linux-gnu"
	PtrSize  int    // bytes
	PtrAlign int    // bytes
}

func AMD64SysV() Target {
	return Target{
		Triple:   "x86_64-linux-gnu",
		PtrSize:  8,
		PtrAlign: 8,
	}
}

// TargetByTriple resolves a triple string to a known target.
func TargetByTriple(triple string) (Target, error) {
	switch triple {
	case "", "x86_64-linux-gnu":
		return AMD64SysV(), nil
	default:
		return Target{}, errors.New(errors.PhaseConfig, errors.KindUnsupportedType).
			Value(triple).
			Detail("unknown target triple %q", triple).
			Build()
	}
}
