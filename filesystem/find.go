package filesystem

import (
	"github.com/brettbedarf/memfs"
)

// find walks segs from the root. Descending through anything that is not a
// directory (a file or a missing intermediate) fails with ErrNoEnt; a missing
// final segment returns (nil, nil) and callers decide whether that is an
// error.
func (fs *FileSystem) find(segs []string) (*Node, error) {
	node := fs.root
	for _, name := range segs {
		if node == nil || !node.IsDir() {
			return nil, memfs.ErrNoEnt
		}
		node, _ = node.GetChild(name)
	}
	return node, nil
}

// findDir resolves segs to an existing directory.
func (fs *FileSystem) findDir(segs []string) (*Node, bool) {
	node, err := fs.find(segs)
	if err != nil || node == nil || !node.IsDir() {
		return nil, false
	}
	return node, true
}
