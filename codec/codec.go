// Package codec defines the (de)serialization boundary between structured
// values and the byte stores used to cache them (see the store package and
// vendorlist.Client).
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
