package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec, the portable alternative to GoJSON.
//
// Notes:
// - Elements must be JSON-encodable; funcs and channels are not.
// - Decoding into an interface element type yields float64 for numbers.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used by Vector's JSON methods and by Encode/Decode
// when no codec is given.
var Default Codec = GoJSON{}
