package sigstr

import (
	"unicode"

	"github.com/callsite/cabi/errors"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokNumber
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokStar
	tokComma
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokStar:
		return "'*'"
	case tokComma:
		return "','"
	}
	return "unknown"
}

type token struct {
	value string
	typ   tokenType
	off   int
}

var punct = map[rune]tokenType{
	'(': tokLParen,
	')': tokRParen,
	'{': tokLBrace,
	'}': tokRBrace,
	'[': tokLBracket,
	']': tokRBracket,
	'*': tokStar,
	',': tokComma,
}

// tokenize scans src into tokens, always ending with a tokEOF carrying
// the end offset. Offsets are rune positions within src.
func tokenize(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsSpace(r) {
			continue
		}

		if typ, ok := punct[r]; ok {
			tokens = append(tokens, token{string(r), typ, i})
			continue
		}

		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			tokens = append(tokens, token{string(runes[start:i]), tokNumber, start})
			i--
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, token{string(runes[start:i]), tokIdent, start})
			i--
			continue
		}

		return nil, errors.Syntax(i, "unexpected character %q", r)
	}

	return append(tokens, token{"", tokEOF, len(runes)}), nil
}
