package async

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	return NewAdapter(filesystem.NewFS(nil))
}

func TestAdapter_Operations(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t)

	_, err := a.Mkdirp("/a/b").Await()
	require.NoError(t, err)
	_, err = a.Mkdir("/a/c").Await()
	require.NoError(t, err)
	_, err = a.WriteString("/a/f", "hello", nil).Await()
	require.NoError(t, err)

	names, err := a.Readdir("/a").Await()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "f"}, names)

	text, err := a.ReadString("/a/f", &filesystem.Options{Encoding: "utf8"}).Await()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	st, err := a.Stat("/a/f").Await()
	require.NoError(t, err)
	assert.Equal(t, int64(5), st.Size())

	_, err = a.Rename("/a/f", "/a/g").Await()
	require.NoError(t, err)
	exists, err := a.Exists("/a/f").Await()
	require.NoError(t, err)
	assert.False(t, exists)

	data, err := a.ReadFile("/a/g").Await()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = a.WriteFile("/a/h", []byte{1}).Await()
	require.NoError(t, err)
	_, err = a.Unlink("/a/h").Await()
	require.NoError(t, err)
	_, err = a.Rmdir("/a/b").Await()
	require.NoError(t, err)
	_, err = a.Access("/a/g", memfs.R_OK).Await()
	require.NoError(t, err)
	_, err = a.Rmrf("/a").Await()
	require.NoError(t, err)

	exists, err = a.Exists("/a").Await()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAdapter_ErrorsAsValues(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t)
	_, err := a.Mkdirp("/a/b").Await()
	require.NoError(t, err)

	_, err = a.Rmdir("/a").Await()
	assert.ErrorIs(t, err, memfs.ErrNotEmpty)
	_, err = a.Stat("/missing").Await()
	assert.ErrorIs(t, err, memfs.ErrNoEnt)
}

func TestAdapter_CallbackSeesCommittedState(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t)
	done := make(chan bool, 1)

	a.Mkdir("/a").Then(func(err error, _ struct{}) {
		assert.NoError(t, err)
		exists, _ := a.Exists("/a").Await()
		done <- exists
	})

	select {
	case exists := <-done:
		assert.True(t, exists)
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}
}

func TestAdapter_Do_RecoversPanic(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t)

	err := a.Do(func(fs *filesystem.FileSystem) error {
		panic("kaboom")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "kaboom")

	// lock must have been released
	_, err = a.Mkdir("/ok").Await()
	assert.NoError(t, err)
}

func TestAdapter_Concurrent(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dir := fmt.Sprintf("/d%d", i)
			for j := range 10 {
				_, err := a.Mkdirp(fmt.Sprintf("%s/%d", dir, j)).Await()
				assert.NoError(t, err)
				_, err = a.WriteString(fmt.Sprintf("%s/%d/f", dir, j), "x", nil).Await()
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	names, err := a.Readdir("/").Await()
	require.NoError(t, err)
	assert.Len(t, names, 20)
	require.NoError(t, a.Do(func(fs *filesystem.FileSystem) error {
		assert.True(t, fs.Exists("/d19/9/f"))
		return nil
	}))
}
