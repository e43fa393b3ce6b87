package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
	"gopkg.in/yaml.v3"
)

// Manifest is a parsed list of nodes to seed a store with.
type Manifest struct {
	Dirs  []*memfs.DirCreateRequest
	Files []*memfs.FileCreateRequest
}

// LoadManifest reads a manifest file. The format is chosen by extension:
// .json, .yaml or .yml.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unknown manifest file extension: %s", path)
	}
}

// ParseJSON parses a JSON array of node entries.
func ParseJSON(data []byte) (*Manifest, error) {
	var rawNodes []json.RawMessage
	if err := json.Unmarshal(data, &rawNodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	return parseEntries(rawNodes)
}

// ParseYAML parses a YAML sequence of node entries.
func ParseYAML(data []byte) (*Manifest, error) {
	var entries []map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	rawNodes := make([]json.RawMessage, 0, len(entries))
	for i, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		rawNodes = append(rawNodes, raw)
	}
	return parseEntries(rawNodes)
}

// parseEntries sorts entries into dir and file requests. Entries of unknown
// type are skipped with a warning; malformed entries fail the whole parse.
func parseEntries(rawNodes []json.RawMessage) (*Manifest, error) {
	logger := util.GetLogger("Manifest")
	m := &Manifest{}

	for i, rawNode := range rawNodes {
		nodeType, err := GetNodeType(rawNode)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}

		switch nodeType {
		case memfs.FileNodeType:
			fileReq, err := UnmarshalFileRequest(rawNode)
			if err != nil {
				return nil, fmt.Errorf("manifest entry %d: %w", i, err)
			}
			m.Files = append(m.Files, fileReq)
			logger.Trace().Str("path", fileReq.Path).Msg("Processed file request")

		case memfs.DirNodeType:
			dirReq, err := UnmarshalDirRequest(rawNode)
			if err != nil {
				return nil, fmt.Errorf("manifest entry %d: %w", i, err)
			}
			m.Dirs = append(m.Dirs, dirReq)
			logger.Trace().Str("path", dirReq.Path).Msg("Processed directory request")

		default:
			logger.Warn().Int("entry", i).Str("type", string(nodeType)).Msg("Unknown node type")
		}
	}

	logger.Debug().
		Int("files", len(m.Files)).
		Int("directories", len(m.Dirs)).
		Msg("Loaded manifest")
	return m, nil
}

// ApplyResult counts the nodes a manifest added.
type ApplyResult struct {
	Dirs  int
	Files int
}

// Apply seeds fs with every directory and then every file in m. A failing
// entry does not stop the rest; all failures are joined into the returned
// error.
func (m *Manifest) Apply(fs *filesystem.FileSystem) (ApplyResult, error) {
	logger := util.GetLogger("Manifest")
	var res ApplyResult
	var errs []error

	for _, req := range m.Dirs {
		if _, err := fs.AddDirNode(req); err != nil {
			logger.Debug().Interface("request", req).Err(err).Msg("Failed to add directory request")
			errs = append(errs, err)
			continue
		}
		res.Dirs++
	}
	for _, req := range m.Files {
		if _, err := fs.AddFileNode(req); err != nil {
			logger.Debug().Interface("request", req).Err(err).Msg("Failed to add file request")
			errs = append(errs, err)
			continue
		}
		res.Files++
	}

	logger.Info().Int("directories", res.Dirs).Int("files", res.Files).Msg("Added new nodes to filesystem")
	return res, errors.Join(errs...)
}
