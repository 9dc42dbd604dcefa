// Package codec centralizes element encoding for pvec.
//
// Vectors encode as a plain sequence of their elements; the codec decides the
// byte representation of that sequence. GoJSON is the default and JSON the
// portable stdlib alternative.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}
