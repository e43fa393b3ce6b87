package codec

import (
	"fmt"
	"strings"
	"sync"
)

// Built-in encoding names.
const (
	UTF8Name    = "utf8"
	UTF16LEName = "utf16le"
	UTF16BEName = "utf16be"
	Latin1Name  = "latin1"
	HexName     = "hex"
	Base64Name  = "base64"
)

// builtins lists every built-in encoding with its canonical name first
// followed by its aliases.
var builtins = []struct {
	names []string
	enc   Encoding
}{
	{[]string{UTF8Name, "utf-8"}, UTF8},
	{[]string{UTF16LEName, "utf-16le", "ucs2", "ucs-2"}, UTF16LE},
	{[]string{UTF16BEName, "utf-16be"}, UTF16BE},
	{[]string{Latin1Name, "binary"}, Latin1},
	{[]string{HexName}, Hex},
	{[]string{Base64Name}, Base64},
}

// Registry maps encoding names to encodings. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	encodings map[string]Encoding
}

// NewRegistry returns an empty registry. See [Registry.RegisterBuiltins].
func NewRegistry() *Registry {
	return &Registry{encodings: make(map[string]Encoding)}
}

// Register ties an encoding to a name. The first registration of a name
// wins; registering it again returns an error.
func (r *Registry) Register(name string, enc Encoding) error {
	if enc == nil {
		return fmt.Errorf("nil encoding for %q", name)
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("empty encoding name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.encodings[key]; ok {
		return fmt.Errorf("encoding %q already registered", key)
	}
	r.encodings[key] = enc
	return nil
}

// RegisterBuiltins registers all built-in encodings by default
// or only the specific ones (plus their aliases) if names are provided.
// Names already registered are left untouched.
func (r *Registry) RegisterBuiltins(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range builtins {
		if len(names) > 0 && !matchesAny(b.names, names) {
			continue
		}
		for _, name := range b.names {
			if _, ok := r.encodings[name]; !ok {
				r.encodings[name] = b.enc
			}
		}
	}
}

func matchesAny(group, names []string) bool {
	for _, want := range names {
		want = strings.ToLower(strings.TrimSpace(want))
		for _, name := range group {
			if name == want {
				return true
			}
		}
	}
	return false
}

// ByName returns the encoding registered under name.
func (r *Registry) ByName(name string) (Encoding, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	enc, ok := r.encodings[key]
	r.mu.RUnlock()
	return enc, ok
}

// Names returns the registered names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.encodings))
	for name := range r.encodings {
		names = append(names, name)
	}
	return names
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.RegisterBuiltins()
	return r
}()

// Register adds enc to the default registry.
func Register(name string, enc Encoding) error {
	return defaultRegistry.Register(name, enc)
}

// ByName looks name up in the default registry.
func ByName(name string) (Encoding, bool) {
	return defaultRegistry.ByName(name)
}
