package filesystem

import (
	"testing"
	"time"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/vpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a manually advanced clock so timestamp rules can be asserted
// exactly.
type testClock struct {
	cur time.Time
}

func newTestClock() *testClock {
	return &testClock{cur: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time { return c.cur }

// Tick advances the clock by one second and returns the new time.
func (c *testClock) Tick() time.Time {
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func newTestFS(t *testing.T, opts ...Option) (*FileSystem, *testClock) {
	t.Helper()
	clock := newTestClock()
	fs := NewFS(nil, append([]Option{WithClock(clock.Now)}, opts...)...)
	require.NotNil(t, fs)
	return fs, clock
}

func mustStat(t *testing.T, fs *FileSystem, p string) *Stats {
	t.Helper()
	st, err := fs.Stat(p)
	require.NoError(t, err, "stat %s", p)
	return st
}

func mustWrite(t *testing.T, fs *FileSystem, p, text string) {
	t.Helper()
	require.NoError(t, fs.WriteString(p, text, nil), "write %s", p)
}

// nodeAt resolves p without touching atime.
func nodeAt(t *testing.T, fs *FileSystem, p string) *Node {
	t.Helper()
	node, err := fs.find(vpath.Parse(p))
	require.NoError(t, err)
	require.NotNil(t, node, "no node at %s", p)
	return node
}

func assertCode(t *testing.T, code memfs.Code, err error, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	assert.Equal(t, code, memfs.CodeOf(err), msgAndArgs...)
}

func assertTime(t *testing.T, want, got time.Time, what string) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s: want %v, got %v", what, want, got)
}
