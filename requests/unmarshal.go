package requests

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brettbedarf/memfs"
)

// ErrMissingPath is returned for a manifest entry without a path.
var ErrMissingPath = errors.New("node request has no path")

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (memfs.NodeCreateRequestType, error) {
	var meta struct {
		Type memfs.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest decodes a file entry, applying defaults for omitted
// fields.
func UnmarshalFileRequest(data []byte) (*memfs.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	node, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}

	return &memfs.FileCreateRequest{
		NodeRequest: node,
		Content:     valueOrDefault(dto.Content, ""),
		Encoding:    valueOrDefault(dto.Encoding, ""),
	}, nil
}

// UnmarshalDirRequest handles explicit directory unmarshaling
func UnmarshalDirRequest(data []byte) (*memfs.DirCreateRequest, error) {
	var dto DirRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	node, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}

	return &memfs.DirCreateRequest{NodeRequest: node}, nil
}

func convertNodeDTO(dto NodeRequestDTO) (memfs.NodeRequest, error) {
	if dto.Path == "" {
		return memfs.NodeRequest{}, fmt.Errorf("%w (type %q)", ErrMissingPath, dto.Type)
	}
	return memfs.NodeRequest{
		Path: dto.Path,
		Type: dto.Type,
	}, nil
}

// valueOrDefault returns the pointer's value if not nil, otherwise the default
func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
