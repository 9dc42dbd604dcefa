package pvec

import "github.com/hupe1980/pvec/codec"

// MarshalJSON encodes the vector as a JSON array using codec.Default.
func (v *Vector[T]) MarshalJSON() ([]byte, error) {
	return v.Encode(nil)
}

// UnmarshalJSON decodes a JSON array into v using codec.Default. It must
// only be used on a fresh zero Vector that nothing else references yet.
func (v *Vector[T]) UnmarshalJSON(data []byte) error {
	w, err := Decode[T](nil, data)
	if err != nil {
		return err
	}
	*v = *w
	return nil
}

// Encode encodes the elements as an array with c. A nil codec selects
// codec.Default.
func (v *Vector[T]) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(v.ToSlice())
}

// Decode builds a vector from an array encoded with c. A nil codec selects
// codec.Default.
func Decode[T any](c codec.Codec, data []byte) (*Vector[T], error) {
	if c == nil {
		c = codec.Default
	}
	var items []T
	if err := c.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return From(items), nil
}
