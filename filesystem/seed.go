package filesystem

import (
	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/vpath"
)

// AddDirNode creates all missing directories in the request's path and
// returns the leaf. It is equivalent to [FileSystem.Mkdirp] and similarly
// will not error if the leaf already exists as a directory.
func (fs *FileSystem) AddDirNode(req *memfs.DirCreateRequest) (*Stats, error) {
	if err := fs.Mkdirp(req.Path); err != nil {
		return nil, err
	}
	node, _ := fs.find(vpath.Parse(req.Path))
	return newStats(node), nil
}

// AddFileNode adds a new file node to the filesystem. It will add any missing
// directories in the path and return the newly created leaf node.
// If a node already exists at the requested path, it fails with EEXISTS.
func (fs *FileSystem) AddFileNode(req *memfs.FileCreateRequest) (*Stats, error) {
	logger := fs.logger("AddFileNode")

	segs := vpath.Parse(req.Path)
	if node, err := fs.find(segs); err == nil && node != nil {
		return nil, fs.fail(logger, memfs.OpWriteFile, req.Path, memfs.EEXISTS)
	}
	if parentSegs, _ := vpath.Split(segs); len(parentSegs) > 0 {
		if err := fs.Mkdirp(vpath.Format(parentSegs)); err != nil {
			logger.Debug().Err(err).Str("path", req.Path).Msg("Failed to create file's ancestor directory(s)")
			return nil, err
		}
	}
	if err := fs.WriteString(req.Path, req.Content, &Options{Encoding: req.Encoding}); err != nil {
		return nil, err
	}
	node, _ := fs.find(segs)
	return newStats(node), nil
}
