package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CBOR is the opt-in binary encoding for cached collections, selected with
// ByName("cbor"). Build it with NewCBOR; the zero value has no modes and panics.
// A duplicate map key, an indefinite-length item, or bytes left after the value
// fail Decode, so a damaged entry turns into a miss.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[[]string] = CBOR[[]string]{}

// strictDecode is shared by every CBOR codec; entries are only ever
// written by Encode, which never emits what it forbids.
var strictDecode = cbor.DecOptions{
	DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	IndefLength: cbor.IndefLengthForbidden,
}

// NewCBOR builds the codec. deterministic selects RFC 8949 core deterministic
// encoding, so equal collections encode to equal bytes in every process.
func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, fmt.Errorf("codec: cbor encode mode: %w", err)
	}
	dm, err := strictDecode.DecMode()
	if err != nil {
		return CBOR[V]{}, fmt.Errorf("codec: cbor decode mode: %w", err)
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR panics where NewCBOR would return an error.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) { return c.enc.Marshal(v) }

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	if err := c.dec.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}
