package filesystem

import (
	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/vpath"
	"github.com/rs/zerolog"
)

// Peek returns a snapshot of the node at p, or false if nothing is there.
// Unlike Stat it leaves atime alone and notifies no observer, so it suits
// bookkeeping lookups made on behalf of another operation.
func (fs *FileSystem) Peek(p string) (*Stats, bool) {
	node, err := fs.find(vpath.Parse(p))
	if err != nil || node == nil {
		return nil, false
	}
	return newStats(node), true
}

// ReadAt copies the file's bytes starting at off into dest and returns how
// many were copied. Reading at or past the end copies nothing. Refreshes
// atime and reports a readFile.
func (fs *FileSystem) ReadAt(p string, dest []byte, off int64) (int, error) {
	logger := fs.logger("ReadAt")

	file, err := fs.readableFile(logger, p)
	if err != nil {
		return 0, err
	}
	n := 0
	if off >= 0 && off < int64(len(file.content)) {
		n = copy(dest, file.content[off:])
	}
	file.touchAtime(fs.now())

	fs.commit(logger, memfs.Event{Op: memfs.OpReadFile, Path: p})
	return n, nil
}

// WriteAt writes data into the existing file at p starting at off, zero
// filling any gap past the current end. Timestamps and the reported event
// match an overwriting WriteFile.
func (fs *FileSystem) WriteAt(p string, data []byte, off int64) error {
	logger := fs.logger("WriteAt")

	if off < 0 {
		return fs.fail(logger, memfs.OpWriteFile, p, memfs.EINVALIDPATH)
	}
	file, err := fs.writableFile(logger, p)
	if err != nil {
		return err
	}
	fs.replaceContent(logger, p, file, splice(file.content, data, off))
	return nil
}

// Truncate cuts or zero extends the existing file at p to size bytes.
func (fs *FileSystem) Truncate(p string, size uint64) error {
	logger := fs.logger("Truncate")

	file, err := fs.writableFile(logger, p)
	if err != nil {
		return err
	}
	fs.replaceContent(logger, p, file, resize(file.content, size))
	return nil
}

func (fs *FileSystem) writableFile(logger zerolog.Logger, p string) (*Node, error) {
	node, err := fs.find(vpath.Parse(p))
	if err != nil || node == nil || !node.IsFile() {
		return nil, fs.fail(logger, memfs.OpWriteFile, p, memfs.ENOENT)
	}
	return node, nil
}

func (fs *FileSystem) replaceContent(logger zerolog.Logger, p string, file *Node, data []byte) {
	now := fs.now()
	file.setContent(data, now)
	if file.parent != nil {
		file.parent.touchAtime(now)
	}
	logger.Trace().Str("path", p).Int("size", len(data)).Msg("Updated file")

	fs.commit(logger, memfs.Event{Op: memfs.OpWriteFile, Path: p})
}

// splice writes data into content at off, zero filling any gap past the
// current end. content may be reused.
func splice(content, data []byte, off int64) []byte {
	end := int(off) + len(data)
	if end > len(content) {
		content = resize(content, uint64(end))
	}
	copy(content[off:], data)
	return content
}

// resize truncates or zero extends content to size bytes.
func resize(content []byte, size uint64) []byte {
	if size <= uint64(len(content)) {
		return content[:size]
	}
	grown := make([]byte, size)
	copy(grown, content)
	return grown
}
