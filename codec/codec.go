package codec

import (
	"github.com/brettbedarf/memfs"
)

// Text implements [memfs.Codec] on top of a [Registry].
type Text struct {
	registry *Registry
	fallback Encoding
}

var _ memfs.Codec = (*Text)(nil)

// New returns a Text codec resolving names in r (the default registry
// when nil) and falling back to the encoding named fallback, or UTF-8 if
// that name is unknown too.
func New(r *Registry, fallback string) *Text {
	if r == nil {
		r = defaultRegistry
	}
	enc, ok := r.ByName(fallback)
	if !ok {
		enc = UTF8
	}
	return &Text{registry: r, fallback: enc}
}

// Default resolves names in the default registry and falls back to UTF-8.
var Default = New(nil, memfs.DefaultEncoding)

// Resolve returns the encoding for name or the fallback.
func (c *Text) Resolve(name string) Encoding {
	if enc, ok := c.registry.ByName(name); ok {
		return enc
	}
	return c.fallback
}

func (c *Text) Encode(text string, encoding string) ([]byte, error) {
	return c.Resolve(encoding).Encode(text)
}

func (c *Text) Decode(data []byte, encoding string) (string, error) {
	return c.Resolve(encoding).Decode(data)
}
