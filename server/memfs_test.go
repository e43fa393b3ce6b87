package server

import (
	"testing"
	"time"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/observers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	counter := observers.NewCounter()
	m := New(nil, filesystem.WithObserver(counter))

	require.NotNil(t, m.Adapter())
	assert.Equal(t, config.NewDefaultConfig(), m.Config())
	require.NoError(t, m.Mkdirp("/seed/dir"))

	exists, err := m.Adapter().Exists("/seed/dir").Await()
	require.NoError(t, err)
	assert.True(t, exists, "adapter must wrap the embedded store")
	assert.Equal(t, int64(1), counter.Count(memfs.OpMkdirp))
}

func TestUnmount_NotMounted(t *testing.T) {
	t.Parallel()

	m := New(nil)
	assert.NoError(t, m.Unmount())
	m.Wait()
}

func TestSeconds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, seconds(1))
	assert.Equal(t, 1500*time.Millisecond, seconds(1.5))
	assert.Equal(t, time.Duration(0), seconds(0))
}
