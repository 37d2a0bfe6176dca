// Package cabi models the native C calling convention: given a logical
// C function signature, it computes the physical register-level
// signature (the wrapper), a marshalling plan connecting the two, and
// strided views for array data passed across the boundary.
//
// The library is a pure calculator. It binds no symbols, executes no
// native code and owns no memory; it answers what a call would look
// like, and leaves making the call to the embedding system.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	cabi/            Root package with the Entry and Binder boundary interfaces
//	├── ctypes/      C type model: primitives, pointers, structs, arrays,
//	│                and size/alignment/offset layout for a target
//	├── abi/         Eightbyte classification of signatures into wrapper
//	│                signatures and marshalling plans (SysV AMD64)
//	├── carray/      Non-owning strided array views over raw pointers,
//	│                row- and column-major, numpy-style slicing
//	├── sigstr/      Text form of signatures ("float64(float64, int32*)")
//	├── errors/      Structured error types for debugging
//	└── cmd/cabi/    CLI: classify, layout, explore, version
//
// # Quick Start
//
// Classify a signature:
//
//	sig, err := sigstr.ParseSignature("{int64, int32}({int32, int32}, int8)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	wrapper, plan, err := abi.Classify(sig)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(wrapper) // "{int64, int32}(int64, int8)"
//	fmt.Println(plan.Args[0].Slots) // [0]
//
// View a C buffer as a 2-D array:
//
//	v, err := carray.C(ptr, []int{rows, cols}, ctypes.Float64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	x, _ := v.At(1, 2)
//
// # Determinism
//
// Classification and layout are pure functions of the type tree and the
// target. The same signature always produces the same wrapper, plan and
// fingerprint, across processes and goroutines, so results may be cached
// or compared by digest (see abi.Fingerprint).
//
// # Thread Safety
//
// Classifier, Cache, Calculator and all ctypes values are safe for
// concurrent use. A carray.View is itself immutable and safe to read
// and slice concurrently; the memory it points at is the caller's to
// synchronize.
//
// # Memory Model
//
// carray views never own their memory. Constructing, slicing or
// releasing a view neither allocates nor frees the underlying buffer,
// and views must not outlive it. Aggregates that escape to memory
// during classification (larger than two eightbytes) are likewise
// caller-allocated; the plan only records that a pointer stands in for
// the value.
package cabi
