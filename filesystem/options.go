package filesystem

import (
	"time"

	"github.com/brettbedarf/memfs"
)

// Option configures a FileSystem at construction.
type Option func(*FileSystem)

// WithObserver registers the collaborator notified after every committed
// operation. Nil disables notifications.
func WithObserver(o memfs.Observer) Option {
	return func(fs *FileSystem) {
		fs.observer = o
	}
}

// WithCodec replaces the text codec used by WriteString and ReadString.
// Nil keeps the default.
func WithCodec(c memfs.Codec) Option {
	return func(fs *FileSystem) {
		if c != nil {
			fs.codec = c
		}
	}
}

// WithClock replaces time.Now as the source of node timestamps.
func WithClock(now func() time.Time) Option {
	return func(fs *FileSystem) {
		if now != nil {
			fs.now = now
		}
	}
}

// Options are per-call text options for WriteString and ReadString.
type Options struct {
	// Encoding names the text encoding; empty means the configured default
	Encoding string
}
