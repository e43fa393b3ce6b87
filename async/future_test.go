package async

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolved(t *testing.T) {
	t.Parallel()

	f := Resolved(42, nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("resolved future must already be done")
	}
	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestGo(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := Go(func() (string, error) {
		<-release
		return "ok", nil
	})

	_, ok, _ := f.AwaitTimeout(10 * time.Millisecond)
	assert.False(t, ok, "future must not complete before fn returns")

	close(release)
	v, ok, err := f.AwaitTimeout(time.Second)
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestFuture_Then(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	type res struct {
		err error
		v   int
	}
	got := make(chan res, 1)

	Resolved(0, boom).Then(func(err error, v int) {
		got <- res{err, v}
	})

	select {
	case r := <-got:
		assert.ErrorIs(t, r.err, boom)
		assert.Zero(t, r.v)
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}
}

func TestMap(t *testing.T) {
	t.Parallel()

	v, err := Map(Resolved(7, nil), func(n int) (string, error) {
		return strconv.Itoa(n * 2), nil
	}).Await()
	require.NoError(t, err)
	assert.Equal(t, "14", v)

	boom := errors.New("boom")
	called := false
	_, err = Map(Resolved(7, boom), func(n int) (string, error) {
		called = true
		return "", nil
	}).Await()
	assert.ErrorIs(t, err, boom)
	assert.False(t, called, "fn must not run on error")
}
