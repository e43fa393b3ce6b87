package requests

import (
	"github.com/brettbedarf/memfs"
)

// NodeRequestDTO is the manifest representation of [memfs.NodeRequest]
type NodeRequestDTO struct {
	Path string                      `json:"path" yaml:"path"`
	Type memfs.NodeCreateRequestType `json:"type" yaml:"type"`
}

// FileRequestDTO is the manifest representation of [memfs.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
	Content        *string `json:"content,omitempty" yaml:"content,omitempty"`   // Initial text (Default empty)
	Encoding       *string `json:"encoding,omitempty" yaml:"encoding,omitempty"` // Encoding of Content (Default the store's)
}

type DirRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
}
