package sigstr

import (
	"errors"
	"strings"
	"testing"

	cabierr "github.com/callsite/cabi/errors"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token
	}{
		{
			"empty",
			"",
			[]token{{"", tokEOF, 0}},
		},
		{
			"parens",
			"()",
			[]token{{"(", tokLParen, 0}, {")", tokRParen, 1}, {"", tokEOF, 2}},
		},
		{
			"scalar call",
			"void(int32)",
			[]token{
				{"void", tokIdent, 0}, {"(", tokLParen, 4},
				{"int32", tokIdent, 5}, {")", tokRParen, 10},
				{"", tokEOF, 11},
			},
		},
		{
			"whitespace",
			"  int32  (  )  ",
			[]token{
				{"int32", tokIdent, 2}, {"(", tokLParen, 9},
				{")", tokRParen, 12}, {"", tokEOF, 15},
			},
		},
		{
			"pointer and array",
			"int8[8]*",
			[]token{
				{"int8", tokIdent, 0}, {"[", tokLBracket, 4},
				{"8", tokNumber, 5}, {"]", tokRBracket, 6},
				{"*", tokStar, 7}, {"", tokEOF, 8},
			},
		},
		{
			"struct",
			"{int8[8], float32*}",
			[]token{
				{"{", tokLBrace, 0}, {"int8", tokIdent, 1},
				{"[", tokLBracket, 5}, {"8", tokNumber, 6}, {"]", tokRBracket, 7},
				{",", tokComma, 8}, {"float32", tokIdent, 10},
				{"*", tokStar, 17}, {"}", tokRBrace, 18},
				{"", tokEOF, 19},
			},
		},
		{
			"multi digit number",
			"int64[128]",
			[]token{
				{"int64", tokIdent, 0}, {"[", tokLBracket, 5},
				{"128", tokNumber, 6}, {"]", tokRBracket, 9},
				{"", tokEOF, 10},
			},
		},
		{
			"underscore identifier",
			"my_type",
			[]token{{"my_type", tokIdent, 0}, {"", tokEOF, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize() error = %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("token count = %d, want %d\ngot: %v", len(tokens), len(tt.expected), tokens)
			}
			for i, tok := range tokens {
				exp := tt.expected[i]
				if tok.typ != exp.typ || tok.value != exp.value || tok.off != exp.off {
					t.Errorf("token %d mismatch:\n  got:  %+v\n  want: %+v", i, tok, exp)
				}
			}
		})
	}
}

func TestTokenizeRejects(t *testing.T) {
	_, err := tokenize("int32 @")
	if err == nil {
		t.Fatal("expected error for stray character")
	}
	if !errors.Is(err, &cabierr.Error{Phase: cabierr.PhaseParse, Kind: cabierr.KindSyntax}) {
		t.Fatalf("error = %v, want parse/syntax", err)
	}
	if !strings.Contains(err.Error(), "offset 6") {
		t.Errorf("error %q should name offset 6", err.Error())
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  tokenType
	}{
		{"end of input", tokEOF},
		{"identifier", tokIdent},
		{"number", tokNumber},
		{"'('", tokLParen},
		{"')'", tokRParen},
		{"'{'", tokLBrace},
		{"'}'", tokRBrace},
		{"'['", tokLBracket},
		{"']'", tokRBracket},
		{"'*'", tokStar},
		{"','", tokComma},
		{"unknown", tokenType(999)},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("tokenType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
