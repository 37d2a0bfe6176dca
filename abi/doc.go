// Package abi classifies logical C signatures into physical calling
// convention signatures per the SysV AMD64 rules.
//
// A logical signature names the types a caller thinks in; the wrapper
// signature names what actually crosses the call boundary after
// aggregates are decomposed into register-sized slots or demoted to
// pointers.
//
// # Classification
//
// Aggregates are flattened to scalar leaves at byte offsets (bools
// become int8), then grouped into eightbyte windows:
//
//	Window contents            Slot type
//	───────────────────────────────────────
//	single leaf                the leaf itself
//	only float32 leaves        float32x2 vector
//	anything else              integer spanning lo..hi bytes
//
// Integer spans of 1/2/4/8 bytes widen to int8/int16/int32/int64; other
// spans become packed ints (int24) that downstream code must not confuse
// with machine integers.
//
// Aggregates larger than 16 bytes never occupy slots:
//
//	argument  →  pointer to caller-owned storage
//	result    →  void return + output pointer appended after all args
//
// Direct aggregate results keep one slot bare ({int32, int32} returns
// int64) and wrap multiple slots in a struct ({int32, int32, int32}
// returns {int64, int32}).
//
// # Usage
//
//	wrapper, plan, err := abi.Classify(abi.NewSignature(
//		ctypes.Float64, ctypes.Float64, ctypes.PointerTo(ctypes.Int32)))
//
// The package-level Classify memoizes by signature Fingerprint; build a
// Classifier or Cache directly to control sharing.
//
// Classification is a pure function of the signature. Classifier, Cache
// and the package-level Classify are all safe for concurrent use.
package abi
