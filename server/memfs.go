package server

import (
	"time"

	"github.com/brettbedarf/memfs/async"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/fusefs"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// MemFs contains the in-memory store with abstractions over mounting it
// through FUSE. The embedded FileSystem may be used directly until Serve
// is called; after that go through Adapter.
type MemFs struct {
	*filesystem.FileSystem
	cfg     *config.Config
	adapter *async.Adapter
	server  *fuse.Server
}

// New creates a MemFs instance given your config.
func New(cfg *config.Config, opts ...filesystem.Option) *MemFs {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	fsys := filesystem.NewFS(cfg, opts...)
	return &MemFs{
		FileSystem: fsys,
		cfg:        cfg,
		adapter:    async.NewAdapter(fsys),
	}
}

// Adapter returns the serializer every mounted request goes through.
func (m *MemFs) Adapter() *async.Adapter {
	return m.adapter
}

// Serve mounts the filesystem at mountPoint and returns once the mount is
// ready. Requests are served in the background until Unmount.
func (m *MemFs) Serve(mountPoint string) error {
	logger := util.GetLogger("Server")
	root := fusefs.NewRoot(m.adapter, m.cfg.DirectIO)
	attrTimeout := seconds(m.cfg.AttrTimeout)
	entryTimeout := seconds(m.cfg.EntryTimeout)
	fuseLogger := util.NewLogLogger("FuseServer", util.DebugLevel)

	srv, err := fs.Mount(mountPoint, root, &fs.Options{
		MountOptions: fuse.MountOptions{
			Name:   m.cfg.Name,
			FsName: m.cfg.FsName,
			Debug:  m.cfg.Debug || m.cfg.LogLvl == util.TraceLevel,
			Logger: fuseLogger,
		},
		AttrTimeout:  &attrTimeout,
		EntryTimeout: &entryTimeout,
		Logger:       fuseLogger,
	})
	if err != nil {
		return err
	}
	m.server = srv
	logger.Debug().Str("mountpoint", mountPoint).Str("fs", m.ID()).Msg("Mounted")
	return nil
}

func (m *MemFs) ServeAsync(mountPoint string) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- m.Serve(mountPoint)
		close(done)
	}()

	return done
}

// Wait blocks until the filesystem is unmounted.
func (m *MemFs) Wait() {
	if m.server != nil {
		m.server.Wait()
	}
}

// Unmount cleanly unmounts the filesystem.
func (m *MemFs) Unmount() error {
	if m.server == nil {
		return nil
	}
	err := m.server.Unmount()
	m.server = nil
	return err
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
