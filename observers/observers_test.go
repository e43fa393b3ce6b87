package observers

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	c := NewCounter()
	fs := filesystem.NewFS(nil, filesystem.WithObserver(c))

	require.NoError(t, fs.Mkdir("/a"))
	require.NoError(t, fs.Mkdir("/b"))
	require.NoError(t, fs.WriteFile("/a/f", []byte("x")))
	assert.Error(t, fs.Rmdir("/a"), "non-empty rmdir must not count")

	assert.Equal(t, int64(2), c.Count(memfs.OpMkdir))
	assert.Equal(t, int64(1), c.Count(memfs.OpWriteFile))
	assert.Equal(t, int64(0), c.Count(memfs.OpRmdir))
	assert.Equal(t, map[memfs.Op]int64{
		memfs.OpMkdir:     2,
		memfs.OpWriteFile: 1,
	}, c.Snapshot())

	c.Reset()
	assert.Equal(t, int64(0), c.Count(memfs.OpMkdir))
}

func TestCounter_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewCounter()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				c.Notify(memfs.Event{Op: memfs.OpStat, Path: "/"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), c.Count(memfs.OpStat))
}

func TestPrometheus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)

	fs := filesystem.NewFS(nil, filesystem.WithObserver(p))
	require.NoError(t, fs.Mkdirp("/a/b"))
	require.NoError(t, fs.Mkdirp("/a/c"))
	require.NoError(t, fs.Rename("/a/c", "/a/d"))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Equal(t, "memfs_operations_total", families[0].GetName())

	got := map[string]float64{}
	for _, m := range families[0].GetMetric() {
		require.Len(t, m.GetLabel(), 1)
		got[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"mkdirp": 2, "rename": 1}, got)
}

func TestPrometheus_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	assert.Error(t, err, "second collector with the same name must be rejected")
}

func TestLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewLogWith(zerolog.New(&buf), zerolog.InfoLevel)

	l.Notify(memfs.Event{Op: memfs.OpRename, Path: "/a", NewPath: "/b"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rename", entry["op"])
	assert.Equal(t, "/a", entry["path"])
	assert.Equal(t, "/b", entry["new_path"])
	assert.Equal(t, "info", entry["level"])
}

func TestLog_OmitsEmptyNewPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewLogWith(zerolog.New(&buf), zerolog.InfoLevel)

	l.Notify(memfs.Event{Op: memfs.OpStat, Path: "/a"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "new_path")
}

func TestMulti(t *testing.T) {
	t.Parallel()

	ev := memfs.Event{Op: memfs.OpUnlink, Path: "/f"}
	first := new(mocks.MockObserver)
	second := new(mocks.MockObserver)
	first.On("Notify", ev).Return().Once()
	second.On("Notify", ev).Return().Once()

	Multi(first, nil, second).Notify(ev)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}
