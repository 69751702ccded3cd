package jsoncompat

// Decoder is the subset of *json.Decoder used by callers.
type Decoder interface {
	Decode(v any) error
}

// Encoder is the subset of *json.Encoder used by callers.
type Encoder interface {
	Encode(v any) error
}
