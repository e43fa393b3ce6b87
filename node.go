package memfs

// NodeType tags a tree node as exactly one of Directory or File.
// It is decided when the node is created and never changes.
type NodeType uint8

const (
	DirNode NodeType = iota + 1
	FileNode
)

func (t NodeType) String() string {
	switch t {
	case DirNode:
		return "dir"
	case FileNode:
		return "file"
	}
	return "unknown"
}

// AccessMode mirrors the POSIX access(2) mode bits. Every existing node is
// fully accessible, so the mode only documents caller intent.
type AccessMode uint32

const (
	F_OK AccessMode = 0
	X_OK AccessMode = 1
	W_OK AccessMode = 2
	R_OK AccessMode = 4
)
