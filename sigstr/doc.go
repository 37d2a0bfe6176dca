// Package sigstr parses C-style signature strings into logical types.
//
// The grammar is the textual form the rest of the module prints:
//
//	sig    := type '(' [ type { ',' type } ] ')'
//	type   := base { '*' | '[' INT ']' }
//	base   := primitive | '{' type { ',' type } '}'
//
// Primitives: void, bool, int8..int64, uint8..uint64, float32, float64,
// plus the aliases char (int8), intp (int64) and uintp (uint64).
// Postfixes bind left to right, so "int8[8]*" is a pointer to an array
// and "int32*[4]" an array of pointers. "void*" is the opaque pointer.
//
//	sig, err := sigstr.ParseSignature("float64(float64, int32*)")
//	t, err := sigstr.ParseType("{int32, int8[8]}")
//
// Parse errors carry the parse phase, the syntax kind and the rune
// offset of the offending token. Parsing and printing round-trip:
// ParseType(t.String()) reproduces t for any logical type.
package sigstr
