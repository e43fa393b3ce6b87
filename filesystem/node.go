package filesystem

import (
	"strings"
	"syscall"
	"time"

	"github.com/brettbedarf/memfs"
)

// Node is an element of the tree: exactly one of Directory or File,
// decided at construction by the mode it was created with.
type Node struct {
	name   string // Name of the node (last part of the path); "" for root
	parent *Node  // nil for root and detached nodes
	// children is non-nil only for directories
	children *childList
	// content is the file's owned bytes; always nil for directories
	content []byte
	*Inode
}

// childList is a name -> node mapping that keeps insertion order.
type childList struct {
	names  []string
	byName map[string]*Node
}

func newChildList() *childList {
	return &childList{byName: make(map[string]*Node)}
}

// NewNode creates a detached node around inode. Directory nodes get an
// empty child list.
//
// NOTE: Parent node is responsible for linking the returned Node with
// AddChild
func NewNode(name string, inode *Inode) *Node {
	node := &Node{name: name, Inode: inode}
	if inode.attr.Mode&syscall.S_IFMT == syscall.S_IFDIR {
		node.children = newChildList()
	}
	return node
}

// Type reports the node's variant.
func (n *Node) Type() memfs.NodeType {
	if n.children != nil {
		return memfs.DirNode
	}
	return memfs.FileNode
}

func (n *Node) IsDir() bool {
	return n.children != nil
}

func (n *Node) IsFile() bool {
	return n.children == nil
}

// Name returns the node's name.
func (n *Node) Name() string {
	return n.name
}

// IsRoot reports whether n is the root of its tree. Detached nodes still
// carry a name and are not roots.
func (n *Node) IsRoot() bool {
	return n.parent == nil && n.name == ""
}

// Path returns the absolute path of the node. Detached nodes return the
// path up to the first detached ancestor.
func (n *Node) Path() string {
	var segs []string
	for cur := n; cur != nil && !cur.IsRoot(); cur = cur.parent {
		segs = append(segs, cur.name)
	}
	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteString(memfs.Separator)
		b.WriteString(segs[i])
	}
	if b.Len() == 0 {
		return memfs.Separator
	}
	return b.String()
}

// AddChild links child under n (a directory) and sets the child's parent.
// An existing child of the same name is replaced in place.
func (n *Node) AddChild(child *Node) {
	if _, ok := n.children.byName[child.name]; !ok {
		n.children.names = append(n.children.names, child.name)
	}
	n.children.byName[child.name] = child
	child.parent = n
	n.attr.Size = uint64(len(n.children.names))
}

// GetChild returns a child node by name. Files have no children.
func (n *Node) GetChild(name string) (child *Node, ok bool) {
	if n.children == nil {
		return nil, false
	}
	child, ok = n.children.byName[name]
	return
}

// RemoveChild unlinks the named child and returns it detached.
func (n *Node) RemoveChild(name string) (*Node, bool) {
	child, ok := n.GetChild(name)
	if !ok {
		return nil, false
	}
	delete(n.children.byName, name)
	for i, cur := range n.children.names {
		if cur == name {
			n.children.names = append(n.children.names[:i], n.children.names[i+1:]...)
			break
		}
	}
	child.parent = nil
	n.attr.Size = uint64(len(n.children.names))
	return child, true
}

// ClearChildren detaches every child and reports how many there were.
func (n *Node) ClearChildren() int {
	cnt := len(n.children.names)
	for _, child := range n.children.byName {
		child.parent = nil
	}
	n.children = newChildList()
	n.attr.Size = 0
	return cnt
}

// ChildNames returns the child names in insertion order.
func (n *Node) ChildNames() []string {
	if n.children == nil {
		return nil
	}
	names := make([]string, len(n.children.names))
	copy(names, n.children.names)
	return names
}

// NumChildren returns the child count; 0 for files.
func (n *Node) NumChildren() int {
	if n.children == nil {
		return 0
	}
	return len(n.children.names)
}

// Size is the child count for directories and the byte length for files.
func (n *Node) Size() int64 {
	if n.IsDir() {
		return int64(n.NumChildren())
	}
	return int64(len(n.content))
}

// setContent replaces the file's bytes, taking ownership of data.
func (n *Node) setContent(data []byte, now time.Time) {
	n.content = data
	n.attr.Size = uint64(len(data))
	n.attr.Blocks = (n.attr.Size + 511) / 512
	n.touchMtime(now)
	n.touchAtime(now)
}

// Content returns a copy of the file's bytes.
func (n *Node) Content() []byte {
	out := make([]byte, len(n.content))
	copy(out, n.content)
	return out
}
