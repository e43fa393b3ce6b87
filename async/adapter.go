// Package async presents filesystem operations as futures. Each operation
// runs to completion under the adapter's lock before its Future is
// returned, so results and callbacks always observe committed state.
package async

import (
	"errors"
	"fmt"
	"sync"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
)

// ErrPanic marks an error recovered from a panicking operation.
var ErrPanic = errors.New("operation panicked")

// Adapter serializes access to one FileSystem. It is safe for concurrent use.
type Adapter struct {
	fs *filesystem.FileSystem
	mu sync.Mutex
}

func NewAdapter(fs *filesystem.FileSystem) *Adapter {
	return &Adapter{fs: fs}
}

// FS returns the wrapped store. Callers must not use it outside Do while
// other goroutines use the adapter.
func (a *Adapter) FS() *filesystem.FileSystem {
	return a.fs
}

// Do runs fn with exclusive access to the store.
func (a *Adapter) Do(fn func(fs *filesystem.FileSystem) error) error {
	_, err := call(a, "do", func() (struct{}, error) {
		return struct{}{}, fn(a.fs)
	})
	return err
}

func (a *Adapter) Stat(p string) *Future[*filesystem.Stats] {
	return run(a, memfs.OpStat, func() (*filesystem.Stats, error) {
		return a.fs.Stat(p)
	})
}

func (a *Adapter) Exists(p string) *Future[bool] {
	return run(a, memfs.OpExists, func() (bool, error) {
		return a.fs.Exists(p), nil
	})
}

func (a *Adapter) Mkdir(p string) *Future[struct{}] {
	return run(a, memfs.OpMkdir, noResult(func() error { return a.fs.Mkdir(p) }))
}

func (a *Adapter) Mkdirp(p string) *Future[struct{}] {
	return run(a, memfs.OpMkdirp, noResult(func() error { return a.fs.Mkdirp(p) }))
}

func (a *Adapter) Readdir(p string) *Future[[]string] {
	return run(a, memfs.OpReaddir, func() ([]string, error) {
		return a.fs.Readdir(p)
	})
}

func (a *Adapter) Rmdir(p string) *Future[struct{}] {
	return run(a, memfs.OpRmdir, noResult(func() error { return a.fs.Rmdir(p) }))
}

func (a *Adapter) Rmrf(p string) *Future[struct{}] {
	return run(a, memfs.OpRmrf, noResult(func() error { return a.fs.Rmrf(p) }))
}

func (a *Adapter) Unlink(p string) *Future[struct{}] {
	return run(a, memfs.OpUnlink, noResult(func() error { return a.fs.Unlink(p) }))
}

func (a *Adapter) WriteFile(p string, data []byte) *Future[struct{}] {
	return run(a, memfs.OpWriteFile, noResult(func() error { return a.fs.WriteFile(p, data) }))
}

func (a *Adapter) WriteString(p, text string, opts *filesystem.Options) *Future[struct{}] {
	return run(a, memfs.OpWriteFile, noResult(func() error { return a.fs.WriteString(p, text, opts) }))
}

func (a *Adapter) ReadFile(p string) *Future[[]byte] {
	return run(a, memfs.OpReadFile, func() ([]byte, error) {
		return a.fs.ReadFile(p)
	})
}

func (a *Adapter) ReadString(p string, opts *filesystem.Options) *Future[string] {
	return run(a, memfs.OpReadFile, func() (string, error) {
		return a.fs.ReadString(p, opts)
	})
}

func (a *Adapter) Rename(oldPath, newPath string) *Future[struct{}] {
	return run(a, memfs.OpRename, noResult(func() error { return a.fs.Rename(oldPath, newPath) }))
}

func (a *Adapter) Access(p string, mode memfs.AccessMode) *Future[struct{}] {
	return run(a, memfs.OpAccess, noResult(func() error { return a.fs.Access(p, mode) }))
}

/* helpers */

func run[T any](a *Adapter, op memfs.Op, fn func() (T, error)) *Future[T] {
	return Resolved(call(a, op, fn))
}

// call runs fn under the lock, turning a panic into an ErrPanic error.
func call[T any](a *Adapter, op memfs.Op, fn func() (T, error)) (v T, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			logger := util.GetLogger("Adapter")
			logger.Error().Str("op", string(op)).Interface("panic", r).Msg("Recovered from panic")
			var zero T
			v, err = zero, fmt.Errorf("%w: %s: %v", ErrPanic, op, r)
		}
	}()
	return fn()
}

func noResult(fn func() error) func() (struct{}, error) {
	return func() (struct{}, error) {
		return struct{}{}, fn()
	}
}
