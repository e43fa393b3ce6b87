package filesystem

import (
	"testing"
	"time"

	"github.com/brettbedarf/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDir(name string, ino uint64) *Node {
	return NewNode(name, NewInode(newDefaultAttr(ino, dirMode, time.Unix(0, 0))))
}

func newTestFile(name string, ino uint64) *Node {
	return NewNode(name, NewInode(newDefaultAttr(ino, fileMode, time.Unix(0, 0))))
}

func TestNewNode_Type(t *testing.T) {
	t.Parallel()

	dir := newTestDir("d", 2)
	file := newTestFile("f", 3)

	assert.Equal(t, memfs.DirNode, dir.Type())
	assert.True(t, dir.IsDir())
	assert.False(t, dir.IsFile())
	assert.Equal(t, memfs.FileNode, file.Type())
	assert.True(t, file.IsFile())
	assert.Nil(t, file.ChildNames(), "files have no children")
	assert.Equal(t, uint32(2), dir.CopyAttr().Nlink)
	assert.Equal(t, uint32(1), file.CopyAttr().Nlink)
}

func TestNode_AddChild(t *testing.T) {
	t.Parallel()

	dir := newTestDir("d", 2)
	a := newTestFile("a", 3)
	b := newTestFile("b", 4)
	dir.AddChild(a)
	dir.AddChild(b)

	assert.Equal(t, []string{"a", "b"}, dir.ChildNames())
	assert.Equal(t, int64(2), dir.Size())
	assert.Same(t, dir, a.parent)

	replacement := newTestDir("a", 5)
	dir.AddChild(replacement)
	got, ok := dir.GetChild("a")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, []string{"a", "b"}, dir.ChildNames(), "replacement keeps its position")
}

func TestNode_RemoveChild(t *testing.T) {
	t.Parallel()

	dir := newTestDir("d", 2)
	for i, name := range []string{"a", "b", "c"} {
		dir.AddChild(newTestFile(name, uint64(3+i)))
	}

	removed, ok := dir.RemoveChild("b")
	require.True(t, ok)
	assert.Nil(t, removed.parent, "removed node must be detached")
	assert.Equal(t, []string{"a", "c"}, dir.ChildNames())
	assert.Equal(t, uint64(2), dir.CopyAttr().Size)

	_, ok = dir.RemoveChild("b")
	assert.False(t, ok)
}

func TestNode_ClearChildren(t *testing.T) {
	t.Parallel()

	dir := newTestDir("d", 2)
	a := newTestFile("a", 3)
	dir.AddChild(a)
	dir.AddChild(newTestDir("b", 4))

	assert.Equal(t, 2, dir.ClearChildren())
	assert.Equal(t, 0, dir.NumChildren())
	assert.Nil(t, a.parent)
	assert.True(t, dir.IsDir(), "cleared node stays a directory")
}

func TestNode_Path(t *testing.T) {
	t.Parallel()

	root := newTestDir("", 1)
	a := newTestDir("a", 2)
	f := newTestFile("f", 3)
	root.AddChild(a)
	a.AddChild(f)

	assert.True(t, root.IsRoot())
	assert.False(t, a.IsRoot())
	assert.Equal(t, "/", root.Path())
	assert.Equal(t, "/a/f", f.Path())

	root.RemoveChild("a")
	assert.Equal(t, "/a/f", f.Path(), "detached subtree keeps its relative path")
	assert.False(t, a.IsRoot(), "detached named node is not a root")
}

func TestNode_SetContent(t *testing.T) {
	t.Parallel()

	f := newTestFile("f", 2)
	now := time.Unix(100, 5)
	f.setContent(make([]byte, 513), now)

	attr := f.CopyAttr()
	assert.Equal(t, uint64(513), attr.Size)
	assert.Equal(t, uint64(2), attr.Blocks)
	assert.True(t, now.Equal(f.Mtime()))
	assert.True(t, now.Equal(f.Atime()))
	assert.True(t, time.Unix(0, 0).Equal(f.Ctime()), "content changes keep ctime")
}
