package filesystem

import (
	iofs "io/fs"
	"time"

	"github.com/brettbedarf/memfs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Stats is a snapshot of a node taken by [FileSystem.Stat]. It implements
// io/fs.FileInfo; later changes to the tree do not affect it.
type Stats struct {
	name  string
	typ   memfs.NodeType
	size  int64
	ctime time.Time
	mtime time.Time
	atime time.Time
	attr  fuse.Attr
}

var _ iofs.FileInfo = (*Stats)(nil)

func newStats(n *Node) *Stats {
	name := n.name
	if n.IsRoot() {
		name = memfs.Separator
	}
	return &Stats{
		name:  name,
		typ:   n.Type(),
		size:  n.Size(),
		ctime: n.Ctime(),
		mtime: n.Mtime(),
		atime: n.Atime(),
		attr:  n.CopyAttr(),
	}
}

// Name is the node's base name, or "/" for the root.
func (s *Stats) Name() string         { return s.name }
func (s *Stats) Type() memfs.NodeType { return s.typ }

// Size is the child count for directories and the byte length for files.
func (s *Stats) Size() int64 { return s.size }

func (s *Stats) Ctime() time.Time { return s.ctime }
func (s *Stats) Mtime() time.Time { return s.mtime }
func (s *Stats) Atime() time.Time { return s.atime }

func (s *Stats) ModTime() time.Time { return s.mtime }

func (s *Stats) Mode() iofs.FileMode {
	if s.typ == memfs.DirNode {
		return iofs.ModeDir | 0o755
	}
	return 0o644
}

func (s *Stats) IsDir() bool       { return s.typ == memfs.DirNode }
func (s *Stats) IsDirectory() bool { return s.typ == memfs.DirNode }
func (s *Stats) IsFile() bool      { return s.typ == memfs.FileNode }

// Only directories and regular files exist in the tree.
func (s *Stats) IsBlockDevice() bool     { return false }
func (s *Stats) IsCharacterDevice() bool { return false }
func (s *Stats) IsSymbolicLink() bool    { return false }
func (s *Stats) IsFIFO() bool            { return false }
func (s *Stats) IsSocket() bool          { return false }

// Ino returns the node's inode number, stable for the node's lifetime.
func (s *Stats) Ino() uint64 { return s.attr.Ino }

// Attr returns the fuse attributes captured with the snapshot.
func (s *Stats) Attr() fuse.Attr { return s.attr }

// Sys returns the captured fuse.Attr.
func (s *Stats) Sys() any { return s.attr }
