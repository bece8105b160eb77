// Package object defines the entity stored by object-storage backings: an
// opaque blob of bytes.
package object

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Object is an opaque blob.
type Object struct {
	Data []byte
}

// New returns an Object holding data.
func New(data []byte) Object {
	return Object{Data: data}
}

// Len returns the size of the blob in bytes.
func (o Object) Len() int {
	return len(o.Data)
}

// Equal reports whether o and other hold the same bytes.
func (o Object) Equal(other Object) bool {
	return bytes.Equal(o.Data, other.Data)
}

// String returns a short description of the object.
func (o Object) String() string {
	return fmt.Sprintf("object(%d bytes)", len(o.Data))
}

// Encode returns an Object holding the msgpack encoding of v.
func Encode[T any](v T) (Object, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return Object{}, fmt.Errorf("object: encode %T: %w", v, err)
	}
	return Object{Data: b}, nil
}

// Decode decodes the msgpack encoded value held by o.
func Decode[T any](o Object) (T, error) {
	var v T
	if err := msgpack.Unmarshal(o.Data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("object: decode %T: %w", v, err)
	}
	return v, nil
}
