package sigstr

import (
	"github.com/callsite/cabi/abi"
	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/errors"
)

// ParseSignature parses a C-style signature string such as
// "float64(float64, int32*)" or "void(float32*, intp, intp)".
func ParseSignature(src string) (abi.Signature, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return abi.Signature{}, err
	}
	return newParser(tokens).parseSignature()
}

// ParseType parses a single type spelling such as "{int32, int8[8]}*".
func ParseType(src string) (*ctypes.Type, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := newParser(tokens)
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokEOF {
		return nil, errors.Syntax(tok.off, "trailing input %q", tok.value)
	}
	return t, nil
}
