//go:build !stdjson

package jsoncompat

import (
	"io"

	"github.com/bytedance/sonic"
)

// api matches encoding/json output byte for byte (html escaping, sorted map keys).
var api = sonic.ConfigStd

// Marshal proxies to sonic when the stdjson build tag is absent.
func Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Unmarshal proxies to sonic when the stdjson build tag is absent.
func Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }

// NewDecoder proxies to the sonic stream decoder.
func NewDecoder(r io.Reader) Decoder { return api.NewDecoder(r) }

// NewEncoder proxies to the sonic stream encoder.
func NewEncoder(w io.Writer) Encoder { return api.NewEncoder(w) }
