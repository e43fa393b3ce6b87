// Package fusefs exposes a FileSystem through the go-fuse node API. Every
// callback runs through an async.Adapter so kernel requests served on
// different goroutines never interleave inside the store.
package fusefs

import (
	"context"
	"syscall"

	"github.com/brettbedarf/memfs/async"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/brettbedarf/memfs/vpath"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Node is the go-fuse inode for one file or directory. It holds no state
// of its own; everything is resolved by path against the store.
type Node struct {
	fs.Inode
	b *bridge
}

var (
	_ fs.NodeGetattrer = (*Node)(nil)
	_ fs.NodeSetattrer = (*Node)(nil)
	_ fs.NodeLookuper  = (*Node)(nil)
	_ fs.NodeReaddirer = (*Node)(nil)
	_ fs.NodeMkdirer   = (*Node)(nil)
	_ fs.NodeCreater   = (*Node)(nil)
	_ fs.NodeOpener    = (*Node)(nil)
	_ fs.NodeReader    = (*Node)(nil)
	_ fs.NodeWriter    = (*Node)(nil)
	_ fs.NodeFsyncer   = (*Node)(nil)
	_ fs.NodeUnlinker  = (*Node)(nil)
	_ fs.NodeRmdirer   = (*Node)(nil)
	_ fs.NodeRenamer   = (*Node)(nil)
	_ fs.NodeAccesser  = (*Node)(nil)
)

// NewRoot returns the root node for mounting a.FS().
func NewRoot(a *async.Adapter, directIO bool) *Node {
	return &Node{b: newBridge(a, directIO)}
}

func (n *Node) path() string {
	return vpath.Normalize(n.Path(nil))
}

// newChild wraps st as a go-fuse inode under n. Inode numbers come from the
// store, so a node that is looked up again maps to the same kernel inode.
func (n *Node) newChild(ctx context.Context, st *filesystem.Stats, out *fuse.EntryOut) *fs.Inode {
	attr := st.Attr()
	out.Attr = attr
	child := &Node{b: n.b}
	return n.NewInode(ctx, child, fs.StableAttr{Mode: attr.Mode & syscall.S_IFMT, Ino: attr.Ino})
}

func (n *Node) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	attr, errno := n.b.getattr(n.path())
	if errno != 0 {
		return errno
	}
	out.Attr = attr
	return 0
}

// Setattr only honours size changes; modes, owners and times are fixed.
func (n *Node) Setattr(ctx context.Context, fh fs.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	p := n.path()
	var (
		attr  fuse.Attr
		errno syscall.Errno
	)
	if size, ok := in.GetSize(); ok {
		attr, errno = n.b.truncate(p, size)
	} else {
		attr, errno = n.b.getattr(p)
	}
	if errno != 0 {
		return errno
	}
	out.Attr = attr
	return 0
}

func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	st, errno := n.b.lookup(n.path(), name)
	if errno != 0 {
		return nil, errno
	}
	return n.newChild(ctx, st, out), 0
}

func (n *Node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	entries, errno := n.b.readdir(n.path())
	if errno != 0 {
		return nil, errno
	}
	return fs.NewListDirStream(entries), 0
}

func (n *Node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	st, errno := n.b.mkdir(n.path(), name)
	if errno != 0 {
		return nil, errno
	}
	return n.newChild(ctx, st, out), 0
}

func (n *Node) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*fs.Inode, fs.FileHandle, uint32, syscall.Errno) {
	st, errno := n.b.mknod(n.path(), name)
	if errno != 0 {
		return nil, nil, 0, errno
	}
	return n.newChild(ctx, st, out), nil, n.b.openFlags(), 0
}

func (n *Node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if errno := n.b.open(n.path(), flags); errno != 0 {
		return nil, 0, errno
	}
	return nil, n.b.openFlags(), 0
}

func (n *Node) Read(ctx context.Context, fh fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	cnt, errno := n.b.read(n.path(), dest, off)
	if errno != 0 {
		return nil, errno
	}
	return fuse.ReadResultData(dest[:cnt]), 0
}

func (n *Node) Write(ctx context.Context, fh fs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	p := n.path()
	if errno := n.b.write(p, data, off); errno != 0 {
		logger := util.GetLogger("fusefs.Write")
		logger.Debug().Err(errno).Str("path", p).Int64("offset", off).Msg("Write failed")
		return 0, errno
	}
	return uint32(len(data)), 0
}

// Fsync is a no-op; content lives only in memory.
func (n *Node) Fsync(ctx context.Context, fh fs.FileHandle, flags uint32) syscall.Errno {
	return 0
}

func (n *Node) Unlink(ctx context.Context, name string) syscall.Errno {
	return n.b.unlink(n.path(), name)
}

func (n *Node) Rmdir(ctx context.Context, name string) syscall.Errno {
	return n.b.rmdir(n.path(), name)
}

func (n *Node) Rename(ctx context.Context, name string, newParent fs.InodeEmbedder, newName string, flags uint32) syscall.Errno {
	newDir := vpath.Normalize(newParent.EmbeddedInode().Path(nil))
	return n.b.rename(n.path(), name, newDir, newName, flags)
}

func (n *Node) Access(ctx context.Context, mask uint32) syscall.Errno {
	return n.b.access(n.path(), mask)
}
