package memfs

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Path string
	Type NodeCreateRequestType
}

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType "dir"
type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

// FileCreateRequest seeds a file. Content is text encoded with Encoding
// (see codec package for the recognized names).
type FileCreateRequest struct {
	NodeRequest
	Content  string
	Encoding string
}

type DirCreateRequest struct {
	NodeRequest
}
