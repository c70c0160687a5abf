package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var errTrailingJSON = errors.New("json: trailing data after value")

// JSON is the default textual codec. The zero value is ready to use.
// Decode rejects trailing data so truncated or concatenated writes read as corrupt.
type JSON[V any] struct{}

var _ Codec[[]string] = JSON[[]string]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	// anything but EOF after the value, stray delimiters included, is corruption
	if _, err := dec.Token(); err != io.EOF {
		var zero V
		return zero, errTrailingJSON
	}
	return v, nil
}
