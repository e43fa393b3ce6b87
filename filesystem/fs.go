package filesystem

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/codec"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/brettbedarf/memfs/vpath"
	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/rs/zerolog"
)

// FileSystem is an in-memory tree of directories and files rooted at a
// single directory that always exists.
//
// Every operation runs to completion before returning and validates before
// mutating, so a failed call leaves the tree untouched. FileSystem does no
// locking of its own: callers sharing one between goroutines must
// serialize access (see the async package).
type FileSystem struct {
	cfg      *config.Config
	id       string        // instance id used to tell stores apart in logs
	root     *Node         // Root of node tree
	lastIno  atomic.Uint64 // Last inode number assigned; incremented when new nodes are created
	codec    memfs.Codec
	observer memfs.Observer
	now      func() time.Time
}

func NewFS(cfg *config.Config, opts ...Option) *FileSystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	fs := &FileSystem{
		cfg:   cfg,
		id:    uuid.NewString(),
		codec: codec.New(nil, cfg.DefaultEncoding),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(fs)
	}

	fs.lastIno.Store(fuse.FUSE_ROOT_ID)
	fs.root = NewNode("", NewInode(newDefaultAttr(fuse.FUSE_ROOT_ID, dirMode, fs.now())))

	logger := fs.logger("NewFS")
	logger.Debug().Str("encoding", cfg.DefaultEncoding).Msg("Created filesystem")
	return fs
}

// ID returns the store's instance id.
func (fs *FileSystem) ID() string {
	return fs.id
}

// Config returns the configuration the store was created with.
func (fs *FileSystem) Config() *config.Config {
	return fs.cfg
}

// Stat resolves p and returns a snapshot of its node. Refreshes atime.
func (fs *FileSystem) Stat(p string) (*Stats, error) {
	logger := fs.logger("Stat")

	node, err := fs.find(vpath.Parse(p))
	if err != nil || node == nil {
		return nil, fs.fail(logger, memfs.OpStat, p, memfs.ENOENT)
	}
	node.touchAtime(fs.now())

	fs.commit(logger, memfs.Event{Op: memfs.OpStat, Path: p})
	return newStats(node), nil
}

// Exists reports whether p resolves to a node. It never fails: a missing
// intermediate or leaf is simply false. Refreshes atime of a found node.
func (fs *FileSystem) Exists(p string) bool {
	logger := fs.logger("Exists")

	node, err := fs.find(vpath.Parse(p))
	found := err == nil && node != nil
	if found {
		node.touchAtime(fs.now())
	}

	fs.commit(logger, memfs.Event{Op: memfs.OpExists, Path: p})
	return found
}

// Mkdir creates one directory as the final segment of p under an existing
// parent directory. It is a no-op if the parent already has a child of that
// name.
func (fs *FileSystem) Mkdir(p string) error {
	logger := fs.logger("Mkdir")

	parentSegs, name := vpath.Split(vpath.Parse(p))
	if name == "" {
		return fs.fail(logger, memfs.OpMkdir, p, memfs.ENODIR)
	}
	parent, ok := fs.findDir(parentSegs)
	if !ok {
		return fs.fail(logger, memfs.OpMkdir, p, memfs.ENODIR)
	}

	if _, exists := parent.GetChild(name); !exists {
		now := fs.now()
		parent.AddChild(fs.newDir(name, now))
		parent.touchMtime(now)
		logger.Debug().Str("path", p).Msg("Created dir")
	}

	fs.commit(logger, memfs.Event{Op: memfs.OpMkdir, Path: p})
	return nil
}

// Mkdirp creates every missing directory along p, like `mkdir -p`.
// Existing directories are left untouched.
func (fs *FileSystem) Mkdirp(p string) error {
	logger := fs.logger("Mkdirp")

	segs := vpath.Parse(p)
	if len(segs) == 0 {
		return fs.fail(logger, memfs.OpMkdirp, p, memfs.ENODIR)
	}
	// A file can only be met before the first creation since everything
	// below a new directory is new, so failing here never leaves partial state.
	cur := fs.root
	newCnt := 0
	now := fs.now()
	for _, name := range segs {
		child, ok := cur.GetChild(name)
		switch {
		case !ok:
			child = fs.newDir(name, now)
			cur.AddChild(child)
			cur.touchMtime(now)
			newCnt++
		case !child.IsDir():
			return fs.fail(logger, memfs.OpMkdirp, p, memfs.ENODIR)
		}
		cur = child
	}
	if newCnt > 0 {
		logger.Debug().Str("path", p).Int("created", newCnt).Msg("Created dir(s)")
	}

	fs.commit(logger, memfs.Event{Op: memfs.OpMkdirp, Path: p})
	return nil
}

// Readdir returns the names of p's children in insertion order. Refreshes
// atime.
func (fs *FileSystem) Readdir(p string) ([]string, error) {
	logger := fs.logger("Readdir")

	dir, ok := fs.findDir(vpath.Parse(p))
	if !ok {
		return nil, fs.fail(logger, memfs.OpReaddir, p, memfs.ENODIR)
	}
	dir.touchAtime(fs.now())

	fs.commit(logger, memfs.Event{Op: memfs.OpReaddir, Path: p})
	return dir.ChildNames(), nil
}

// ReaddirStats is Readdir returning a snapshot of each child instead of its
// name. Only the directory's atime is refreshed.
func (fs *FileSystem) ReaddirStats(p string) ([]*Stats, error) {
	logger := fs.logger("ReaddirStats")

	dir, ok := fs.findDir(vpath.Parse(p))
	if !ok {
		return nil, fs.fail(logger, memfs.OpReaddir, p, memfs.ENODIR)
	}
	dir.touchAtime(fs.now())

	stats := make([]*Stats, 0, dir.NumChildren())
	for _, name := range dir.children.names {
		stats = append(stats, newStats(dir.children.byName[name]))
	}

	fs.commit(logger, memfs.Event{Op: memfs.OpReaddir, Path: p})
	return stats, nil
}

// Rmdir removes the empty directory at p.
func (fs *FileSystem) Rmdir(p string) error {
	logger := fs.logger("Rmdir")

	segs := vpath.Parse(p)
	if len(segs) == 0 {
		return fs.fail(logger, memfs.OpRmdir, p, memfs.EINVALIDPATH)
	}
	dir, ok := fs.findDir(segs)
	if !ok {
		return fs.fail(logger, memfs.OpRmdir, p, memfs.ENODIR)
	}
	if dir.NumChildren() > 0 {
		return fs.fail(logger, memfs.OpRmdir, p, memfs.ENOTEMPTY)
	}

	parent := dir.parent
	parent.RemoveChild(dir.name)
	parent.touchMtime(fs.now())
	logger.Debug().Str("path", p).Msg("Removed dir")

	fs.commit(logger, memfs.Event{Op: memfs.OpRmdir, Path: p})
	return nil
}

// Rmrf recursively removes the node at p, file or directory. When p is the
// root, the root's children are removed instead. A missing leaf is not an
// error.
func (fs *FileSystem) Rmrf(p string) error {
	logger := fs.logger("Rmrf")

	parentSegs, name := vpath.Split(vpath.Parse(p))
	parent, ok := fs.findDir(parentSegs)
	if !ok {
		return fs.fail(logger, memfs.OpRmrf, p, memfs.ENODIR)
	}

	removed := 0
	if name == "" {
		removed = parent.ClearChildren()
	} else if _, ok := parent.RemoveChild(name); ok {
		removed = 1
	}
	if removed > 0 {
		parent.touchMtime(fs.now())
		logger.Debug().Str("path", p).Msg("Removed tree")
	}

	fs.commit(logger, memfs.Event{Op: memfs.OpRmrf, Path: p})
	return nil
}

// Unlink removes the file at p. Directories are refused.
func (fs *FileSystem) Unlink(p string) error {
	logger := fs.logger("Unlink")

	parentSegs, name := vpath.Split(vpath.Parse(p))
	if name == "" {
		return fs.fail(logger, memfs.OpUnlink, p, memfs.EINVALIDPATH)
	}
	parent, ok := fs.findDir(parentSegs)
	if !ok {
		return fs.fail(logger, memfs.OpUnlink, p, memfs.ENODIR)
	}
	if child, ok := parent.GetChild(name); !ok || !child.IsFile() {
		return fs.fail(logger, memfs.OpUnlink, p, memfs.ENOENT)
	}

	parent.RemoveChild(name)
	parent.touchMtime(fs.now())
	logger.Debug().Str("path", p).Msg("Removed file")

	fs.commit(logger, memfs.Event{Op: memfs.OpUnlink, Path: p})
	return nil
}

// WriteFile creates or overwrites the file at p with a copy of data.
// Overwriting keeps ctime and refreshes mtime and atime; creating also
// refreshes the parent's mtime.
func (fs *FileSystem) WriteFile(p string, data []byte) error {
	owned := make([]byte, len(data))
	copy(owned, data)
	return fs.writeFile(p, owned)
}

// WriteString encodes text with the encoding named in opts (the configured
// default when opts is nil or names none) and writes it like WriteFile.
func (fs *FileSystem) WriteString(p string, text string, opts *Options) error {
	data, err := fs.codec.Encode(text, fs.encoding(opts))
	if err != nil {
		return fmt.Errorf("%s %s: %w", memfs.OpWriteFile, p, err)
	}
	return fs.writeFile(p, data)
}

func (fs *FileSystem) writeFile(p string, data []byte) error {
	logger := fs.logger("WriteFile")

	parentSegs, name := vpath.Split(vpath.Parse(p))
	parent, ok := fs.findDir(parentSegs)
	if !ok {
		return fs.fail(logger, memfs.OpWriteFile, p, memfs.ENODIR)
	}
	if name == "" {
		return fs.fail(logger, memfs.OpWriteFile, p, memfs.EINVALIDPATH)
	}
	existing, exists := parent.GetChild(name)
	if exists && existing.IsDir() {
		return fs.fail(logger, memfs.OpWriteFile, p, memfs.EEXISTS)
	}

	now := fs.now()
	if exists {
		existing.setContent(data, now)
		logger.Trace().Str("path", p).Int("size", len(data)).Msg("Updated file")
	} else {
		file := fs.newFile(name, now)
		file.setContent(data, now)
		parent.AddChild(file)
		parent.touchMtime(now)
		logger.Debug().Str("path", p).Int("size", len(data)).Msg("Created file")
	}
	parent.touchAtime(now)

	fs.commit(logger, memfs.Event{Op: memfs.OpWriteFile, Path: p})
	return nil
}

// ReadFile returns a copy of the bytes of the file at p. Refreshes atime.
func (fs *FileSystem) ReadFile(p string) ([]byte, error) {
	logger := fs.logger("ReadFile")

	file, err := fs.readableFile(logger, p)
	if err != nil {
		return nil, err
	}
	file.touchAtime(fs.now())

	fs.commit(logger, memfs.Event{Op: memfs.OpReadFile, Path: p})
	return file.Content(), nil
}

// ReadString decodes the file at p with the encoding named in opts (the
// configured default when opts is nil or names none).
func (fs *FileSystem) ReadString(p string, opts *Options) (string, error) {
	logger := fs.logger("ReadFile")

	file, err := fs.readableFile(logger, p)
	if err != nil {
		return "", err
	}
	text, err := fs.codec.Decode(file.content, fs.encoding(opts))
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", memfs.OpReadFile, p, err)
	}
	file.touchAtime(fs.now())

	fs.commit(logger, memfs.Event{Op: memfs.OpReadFile, Path: p})
	return text, nil
}

func (fs *FileSystem) readableFile(logger zerolog.Logger, p string) (*Node, error) {
	node, err := fs.find(vpath.Parse(p))
	if err != nil || node == nil || !node.IsFile() {
		return nil, fs.fail(logger, memfs.OpReadFile, p, memfs.ENOENT)
	}
	return node, nil
}

// Rename moves the node at oldPath, with its whole subtree, to newPath.
// It never overwrites: an occupied destination fails with EEXISTS. The
// moved node gets a fresh ctime and keeps its mtime; both parents get a
// fresh mtime.
func (fs *FileSystem) Rename(oldPath, newPath string) error {
	logger := fs.logger("Rename")

	oldSegs, newSegs := vpath.Parse(oldPath), vpath.Parse(newPath)
	if len(oldSegs) == 0 || len(newSegs) == 0 {
		return fs.fail(logger, memfs.OpRename, oldPath, memfs.ENOENT)
	}
	oldParentSegs, oldName := vpath.Split(oldSegs)
	newParentSegs, newName := vpath.Split(newSegs)

	oldParent, ok := fs.findDir(oldParentSegs)
	if !ok {
		return fs.fail(logger, memfs.OpRename, oldPath, memfs.ENODIR)
	}
	newParent, ok := fs.findDir(newParentSegs)
	if !ok {
		return fs.fail(logger, memfs.OpRename, newPath, memfs.ENODIR)
	}
	node, ok := oldParent.GetChild(oldName)
	if !ok {
		return fs.fail(logger, memfs.OpRename, oldPath, memfs.ENOENT)
	}
	if _, ok := newParent.GetChild(newName); ok {
		return fs.fail(logger, memfs.OpRename, newPath, memfs.EEXISTS)
	}
	if vpath.HasPrefix(newSegs, oldSegs) {
		// moving a directory below itself would detach a cycle
		return fs.fail(logger, memfs.OpRename, newPath, memfs.EINVALIDPATH)
	}

	now := fs.now()
	oldParent.RemoveChild(oldName)
	oldParent.touchMtime(now)

	node.name = newName
	newParent.AddChild(node)
	node.touchCtime(now)
	newParent.touchMtime(now)
	logger.Debug().Str("from", oldPath).Str("to", newPath).Msg("Renamed node")

	fs.commit(logger, memfs.Event{Op: memfs.OpRename, Path: oldPath, NewPath: newPath})
	return nil
}

// Access checks that p exists. Every existing node is fully accessible,
// whatever mode asks for.
func (fs *FileSystem) Access(p string, mode memfs.AccessMode) error {
	logger := fs.logger("Access")

	node, err := fs.find(vpath.Parse(p))
	if err != nil || node == nil {
		return fs.fail(logger, memfs.OpAccess, p, memfs.ENOENT)
	}
	logger.Trace().Str("path", p).Uint32("mode", uint32(mode)).Msg("Access granted")

	fs.commit(logger, memfs.Event{Op: memfs.OpAccess, Path: p})
	return nil
}

/* helpers */

func (fs *FileSystem) newDir(name string, now time.Time) *Node {
	return NewNode(name, NewInode(newDefaultAttr(fs.lastIno.Add(1), dirMode, now)))
}

func (fs *FileSystem) newFile(name string, now time.Time) *Node {
	return NewNode(name, NewInode(newDefaultAttr(fs.lastIno.Add(1), fileMode, now)))
}

func (fs *FileSystem) encoding(opts *Options) string {
	if opts != nil && opts.Encoding != "" {
		return opts.Encoding
	}
	return fs.cfg.DefaultEncoding
}

// fail logs and builds the error returned for a rejected operation.
func (fs *FileSystem) fail(logger zerolog.Logger, op memfs.Op, p string, code memfs.Code) error {
	err := memfs.NewPathError(string(op), p, code)
	logger.Debug().Err(err).Str("path", p).Msg("Operation rejected")
	return err
}

// commit notifies the observer of a completed operation.
func (fs *FileSystem) commit(logger zerolog.Logger, ev memfs.Event) {
	logger.Trace().Str("op", string(ev.Op)).Str("path", ev.Path).Msg("Operation committed")
	if fs.observer != nil {
		fs.observer.Notify(ev)
	}
}

func (fs *FileSystem) logger(method string) zerolog.Logger {
	return util.GetLogger("FileSystem."+method).With().Str("fs", fs.id).Logger()
}
