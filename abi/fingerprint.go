package abi

import (
	"bytes"
	"crypto/sha256"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/callsite/cabi/ctypes"
	"github.com/callsite/cabi/errors"
)

// fingerprintVersion is bumped whenever the encoding below changes, so
// digests from different library versions never collide.
const fingerprintVersion = 1

type fpType struct {
	Fields []fpType `msgpack:"f,omitempty"`
	Elem   *fpType  `msgpack:"e,omitempty"`
	Len    uint32   `msgpack:"n,omitempty"`
	Bits   uint32   `msgpack:"b,omitempty"`
	Kind   uint8    `msgpack:"k"`
}

type fpSignature struct {
	Args    []fpType `msgpack:"a"`
	Ret     *fpType  `msgpack:"r,omitempty"`
	Version int      `msgpack:"v"`
}

// Fingerprint returns a stable digest of the signature's structure.
// Structurally equal signatures digest identically; field names do not
// participate, mirroring Type.Equal.
func Fingerprint(sig Signature) ([sha256.Size]byte, error) {
	payload := fpSignature{Version: fingerprintVersion}

	for i, a := range sig.Args {
		ft, err := fpOf(a, []string{"arg", strconv.Itoa(i)})
		if err != nil {
			return [sha256.Size]byte{}, err
		}
		payload.Args = append(payload.Args, ft)
	}
	if sig.Ret != nil {
		rt, err := fpOf(sig.Ret, []string{"ret"})
		if err != nil {
			return [sha256.Size]byte{}, err
		}
		payload.Ret = &rt
	}

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(payload); err != nil {
		return [sha256.Size]byte{}, errors.Wrap(errors.PhaseClassify, errors.KindUnsupportedType, err, "encode signature fingerprint")
	}
	return sha256.Sum256(buf.Bytes()), nil
}

func fpOf(t *ctypes.Type, path []string) (fpType, error) {
	if t == nil {
		return fpType{}, errors.UnsupportedType(errors.PhaseClassify, path, "<nil>")
	}

	ft := fpType{Kind: uint8(t.Kind), Len: t.Len, Bits: t.Bits}
	if t.Elem != nil {
		elem, err := fpOf(t.Elem, append(path, "[]"))
		if err != nil {
			return fpType{}, err
		}
		ft.Elem = &elem
	}
	for i, f := range t.Fields {
		sub, err := fpOf(f.Type, append(path, strconv.Itoa(i)))
		if err != nil {
			return fpType{}, err
		}
		ft.Fields = append(ft.Fields, sub)
	}
	return ft, nil
}
