package filesystem

import (
	"os"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
)

const (
	dirMode  = uint32(syscall.S_IFDIR | 0o755)
	fileMode = uint32(syscall.S_IFREG | 0o644)
)

// Inode holds a node's attributes in fuse wire form so the FUSE bridge can
// hand them out as-is. The file type bits of Mode are the node's tag.
type Inode struct {
	attr *fuse.Attr
}

func NewInode(attr *fuse.Attr) *Inode {
	return &Inode{attr: attr}
}

// CopyAttr returns a copy of the inode's attributes
func (n *Inode) CopyAttr() fuse.Attr {
	return *n.attr
}

// Ino returns the inode number.
func (n *Inode) Ino() uint64 {
	return n.attr.Ino
}

func (n *Inode) Ctime() time.Time {
	return time.Unix(int64(n.attr.Ctime), int64(n.attr.Ctimensec))
}

func (n *Inode) Mtime() time.Time {
	return time.Unix(int64(n.attr.Mtime), int64(n.attr.Mtimensec))
}

func (n *Inode) Atime() time.Time {
	return time.Unix(int64(n.attr.Atime), int64(n.attr.Atimensec))
}

func (n *Inode) touchCtime(t time.Time) {
	n.attr.Ctime, n.attr.Ctimensec = uint64(t.Unix()), uint32(t.Nanosecond())
}

func (n *Inode) touchMtime(t time.Time) {
	n.attr.Mtime, n.attr.Mtimensec = uint64(t.Unix()), uint32(t.Nanosecond())
}

func (n *Inode) touchAtime(t time.Time) {
	n.attr.Atime, n.attr.Atimensec = uint64(t.Unix()), uint32(t.Nanosecond())
}

// newDefaultAttr returns the attributes for a new node created at now.
func newDefaultAttr(ino uint64, mode uint32, now time.Time) *fuse.Attr {
	sec, nsec := uint64(now.Unix()), uint32(now.Nanosecond())
	nlink := uint32(1)
	if mode&syscall.S_IFMT == syscall.S_IFDIR {
		nlink = 2
	}
	return &fuse.Attr{
		Ino:   ino,
		Mode:  mode,
		Nlink: nlink,
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
		Atime:     sec,
		Mtime:     sec,
		Ctime:     sec,
		Atimensec: nsec,
		Mtimensec: nsec,
		Ctimensec: nsec,
		Blksize:   4096, // preferred size for fs ops
	}
}
