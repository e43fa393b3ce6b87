package fusefs

import (
	"errors"
	"syscall"

	"github.com/brettbedarf/memfs"
)

// ToErrno maps a filesystem error to the errno reported to the kernel.
// Errnos pass through unchanged; other errors outside the memfs taxonomy
// become EIO.
func ToErrno(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	switch memfs.CodeOf(err) {
	case memfs.ENOENT:
		return syscall.ENOENT
	case memfs.ENODIR:
		return syscall.ENOTDIR
	case memfs.ENOTEMPTY:
		return syscall.ENOTEMPTY
	case memfs.EEXISTS:
		return syscall.EEXIST
	case memfs.EINVALIDPATH:
		return syscall.EINVAL
	default:
		return syscall.EIO
	}
}
