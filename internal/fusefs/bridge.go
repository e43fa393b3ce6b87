package fusefs

import (
	"syscall"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/async"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/vpath"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// renameNoReplace is the linux RENAME_NOREPLACE flag. Renames never
// replace, so it is accepted and has no effect.
const renameNoReplace uint32 = 0x1

// bridge is state shared by every node of one mount. Its methods hold the
// store side of each kernel callback and work on resolved paths, so they
// run without a mount.
//
// Bookkeeping lookups use Peek: only the operation the kernel asked for
// touches atime or reaches the observer.
type bridge struct {
	a        *async.Adapter
	directIO bool
}

func newBridge(a *async.Adapter, directIO bool) *bridge {
	return &bridge{a: a, directIO: directIO}
}

// validName reports whether the store keeps name verbatim as one path
// segment. Anything the path grammar would trim, split or reinterpret is
// refused rather than aliased to another name.
func validName(name string) bool {
	segs := vpath.Parse(name)
	return len(segs) == 1 && segs[0] == name
}

// peek looks p up under the adapter's lock.
func (b *bridge) peek(p string) (*filesystem.Stats, syscall.Errno) {
	var st *filesystem.Stats
	err := b.a.Do(func(fsys *filesystem.FileSystem) error {
		var ok bool
		if st, ok = fsys.Peek(p); !ok {
			return syscall.ENOENT
		}
		return nil
	})
	return st, ToErrno(err)
}

func (b *bridge) getattr(p string) (fuse.Attr, syscall.Errno) {
	st, errno := b.peek(p)
	if errno != 0 {
		return fuse.Attr{}, errno
	}
	return st.Attr(), 0
}

func (b *bridge) lookup(dir, name string) (*filesystem.Stats, syscall.Errno) {
	if !validName(name) {
		return nil, syscall.ENOENT
	}
	return b.peek(vpath.Join(dir, name))
}

// truncate resizes the file at p. Directories fail with EISDIR.
func (b *bridge) truncate(p string, size uint64) (fuse.Attr, syscall.Errno) {
	var st *filesystem.Stats
	err := b.a.Do(func(fsys *filesystem.FileSystem) error {
		cur, ok := fsys.Peek(p)
		if !ok {
			return syscall.ENOENT
		}
		if cur.IsDir() {
			return syscall.EISDIR
		}
		if err := fsys.Truncate(p, size); err != nil {
			return err
		}
		st, _ = fsys.Peek(p)
		return nil
	})
	if err != nil {
		return fuse.Attr{}, ToErrno(err)
	}
	return st.Attr(), 0
}

func (b *bridge) readdir(p string) ([]fuse.DirEntry, syscall.Errno) {
	var stats []*filesystem.Stats
	err := b.a.Do(func(fsys *filesystem.FileSystem) error {
		var err error
		stats, err = fsys.ReaddirStats(p)
		return err
	})
	if err != nil {
		return nil, ToErrno(err)
	}
	entries := make([]fuse.DirEntry, 0, len(stats))
	for _, st := range stats {
		attr := st.Attr()
		entries = append(entries, fuse.DirEntry{Name: st.Name(), Mode: attr.Mode, Ino: attr.Ino})
	}
	return entries, 0
}

// mkdir fails with EEXIST for an existing name, unlike the store's
// idempotent mkdir, since the kernel expects POSIX semantics.
func (b *bridge) mkdir(dir, name string) (*filesystem.Stats, syscall.Errno) {
	if !validName(name) {
		return nil, syscall.EINVAL
	}
	return b.create(vpath.Join(dir, name), func(fsys *filesystem.FileSystem, p string) error {
		return fsys.Mkdir(p)
	})
}

// mknod creates an empty file, failing with EEXIST if name is taken.
func (b *bridge) mknod(dir, name string) (*filesystem.Stats, syscall.Errno) {
	if !validName(name) {
		return nil, syscall.EINVAL
	}
	return b.create(vpath.Join(dir, name), func(fsys *filesystem.FileSystem, p string) error {
		return fsys.WriteFile(p, nil)
	})
}

func (b *bridge) create(p string, fn func(fsys *filesystem.FileSystem, p string) error) (*filesystem.Stats, syscall.Errno) {
	var st *filesystem.Stats
	err := b.a.Do(func(fsys *filesystem.FileSystem) error {
		if _, ok := fsys.Peek(p); ok {
			return syscall.EEXIST
		}
		if err := fn(fsys, p); err != nil {
			return err
		}
		st, _ = fsys.Peek(p)
		return nil
	})
	if err != nil {
		return nil, ToErrno(err)
	}
	return st, 0
}

// open empties the file when flags carry O_TRUNC.
func (b *bridge) open(p string, flags uint32) syscall.Errno {
	if flags&syscall.O_TRUNC != 0 {
		_, errno := b.truncate(p, 0)
		return errno
	}
	_, errno := b.peek(p)
	return errno
}

func (b *bridge) read(p string, dest []byte, off int64) (int, syscall.Errno) {
	var n int
	err := b.a.Do(func(fsys *filesystem.FileSystem) error {
		var err error
		n, err = fsys.ReadAt(p, dest, off)
		return err
	})
	return n, ToErrno(err)
}

func (b *bridge) write(p string, data []byte, off int64) syscall.Errno {
	err := b.a.Do(func(fsys *filesystem.FileSystem) error {
		return fsys.WriteAt(p, data, off)
	})
	return ToErrno(err)
}

func (b *bridge) unlink(dir, name string) syscall.Errno {
	if !validName(name) {
		return syscall.ENOENT
	}
	_, err := b.a.Unlink(vpath.Join(dir, name)).Await()
	return ToErrno(err)
}

func (b *bridge) rmdir(dir, name string) syscall.Errno {
	if !validName(name) {
		return syscall.ENOENT
	}
	_, err := b.a.Rmdir(vpath.Join(dir, name)).Await()
	return ToErrno(err)
}

// rename never replaces an existing destination; it reports EEXIST instead.
func (b *bridge) rename(dir, name, newDir, newName string, flags uint32) syscall.Errno {
	if flags&^renameNoReplace != 0 || !validName(newName) {
		return syscall.EINVAL
	}
	if !validName(name) {
		return syscall.ENOENT
	}
	_, err := b.a.Rename(vpath.Join(dir, name), vpath.Join(newDir, newName)).Await()
	return ToErrno(err)
}

func (b *bridge) access(p string, mask uint32) syscall.Errno {
	_, err := b.a.Access(p, memfs.AccessMode(mask)).Await()
	return ToErrno(err)
}

func (b *bridge) openFlags() uint32 {
	if b.directIO {
		return fuse.FOPEN_DIRECT_IO
	}
	return 0
}
