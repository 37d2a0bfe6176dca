package sigstr

import (
	"strconv"

	"github.com/callsite/cabi/abi"
	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/errors"
)

// primitives maps source spellings onto type singletons. char, intp and
// uintp follow the LP64 data model the classifier targets.
var primitives = map[string]*ctypes.Type{
	"void":    ctypes.Void,
	"bool":    ctypes.Bool,
	"int8":    ctypes.Int8,
	"int16":   ctypes.Int16,
	"int32":   ctypes.Int32,
	"int64":   ctypes.Int64,
	"uint8":   ctypes.Uint8,
	"uint16":  ctypes.Uint16,
	"uint32":  ctypes.Uint32,
	"uint64":  ctypes.Uint64,
	"float32": ctypes.Float32,
	"float64": ctypes.Float64,
	"char":    ctypes.Int8,
	"intp":    ctypes.Int64,
	"uintp":   ctypes.Uint64,
}

type parser struct {
	tokens []token
	pos    int
}

func newParser(tokens []token) *parser {
	return &parser{tokens: tokens}
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType) (token, error) {
	t := p.next()
	if t.typ != typ {
		return t, errors.Syntax(t.off, "expected %s, got %s", typ, describe(t))
	}
	return t, nil
}

func (p *parser) parseSignature() (abi.Signature, error) {
	ret, err := p.parseType()
	if err != nil {
		return abi.Signature{}, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return abi.Signature{}, err
	}

	var args []*ctypes.Type
	if p.peek().typ != tokRParen {
		for {
			arg, err := p.parseType()
			if err != nil {
				return abi.Signature{}, err
			}
			args = append(args, arg)
			if p.peek().typ != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return abi.Signature{}, err
	}
	if t := p.peek(); t.typ != tokEOF {
		return abi.Signature{}, errors.Syntax(t.off, "trailing input %q", t.value)
	}
	return abi.NewSignature(ret, args...), nil
}

// parseType parses a base type followed by any number of postfixes.
// Postfixes bind left to right: int8[8]* is a pointer to an 8-array.
func (p *parser) parseType() (*ctypes.Type, error) {
	t, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().typ {
		case tokStar:
			p.next()
			if t.Kind == ctypes.KindVoid {
				t = ctypes.VoidPtr
			} else {
				t = ctypes.PointerTo(t)
			}
		case tokLBracket:
			p.next()
			n, err := p.parseLen()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket); err != nil {
				return nil, err
			}
			t = ctypes.ArrayOf(t, n)
		default:
			return t, nil
		}
	}
}

func (p *parser) parseBase() (*ctypes.Type, error) {
	t := p.next()
	switch t.typ {
	case tokIdent:
		if prim, ok := primitives[t.value]; ok {
			return prim, nil
		}
		return nil, errors.Syntax(t.off, "unknown type name %q", t.value)
	case tokLBrace:
		return p.parseStructBody()
	default:
		return nil, errors.Syntax(t.off, "expected type, got %s", describe(t))
	}
}

// parseStructBody parses the members after an opening brace. Structs
// need at least one member.
func (p *parser) parseStructBody() (*ctypes.Type, error) {
	var elems []*ctypes.Type
	for {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if p.peek().typ != tokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokRBrace); err != nil {
		return nil, err
	}
	return ctypes.StructOf(elems...), nil
}

func (p *parser) parseLen() (uint32, error) {
	t, err := p.expect(tokNumber)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseUint(t.value, 10, 32)
	if perr != nil {
		return 0, errors.Syntax(t.off, "invalid array length %q", t.value)
	}
	return uint32(n), nil
}

func describe(t token) string {
	if t.typ == tokEOF {
		return "end of input"
	}
	return strconv.Quote(t.value)
}
