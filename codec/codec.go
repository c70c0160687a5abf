// Package codec holds the serialization boundary between a lookup and its
// provider. A codec must be symmetric: Decode(Encode(v)) == v.
//
// Stored entries can outlive a deploy by the full TTL, so changing the codec
// of a live namespace turns every existing entry into a decode miss.
package codec

import "fmt"

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// ByName returns the codec registered under name: "json" (or ""), "msgpack", "cbor".
func ByName[V any](name string) (Codec[V], error) {
	switch name {
	case "", "json":
		return JSON[V]{}, nil
	case "msgpack":
		return Msgpack[V]{}, nil
	case "cbor":
		cb, err := NewCBOR[V](true)
		if err != nil {
			return nil, err
		}
		return cb, nil
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}
