// Package errors provides structured error types for the cabi library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, dtype/pointer type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseView, errors.KindDtypeMismatch).
//		DType("int32").
//		PtrType("float64*").
//		Detail("element widths differ").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DtypeMismatch("int32", "float64*")
//	err := errors.OutOfBounds(errors.PhaseView, path, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
